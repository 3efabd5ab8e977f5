package main

import (
	"union-activity-system/cmd/server"
)

func main() {
	server.Init()
	server.Run()
}
