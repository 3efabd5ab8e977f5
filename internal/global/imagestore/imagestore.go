package imagestore

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
	appconfig "union-activity-system/config"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ImageStore 图片存储，活动封面和用户头像统一经由此处
// 配置了 S3 时走预签名直传，否则退化为本地目录保存
type ImageStore struct {
	SaveDir string // 本地保存目录
	BaseURL string // 图片访问基础URL

	Endpoint     string
	Bucket       string
	Region       string
	Prefix       string
	UsePathStyle bool

	s3Client *s3.Client
}

// New 根据全局配置创建图片存储实例
func New(saveDir, baseURL string) *ImageStore {
	cfg := appconfig.Get().S3
	return &ImageStore{
		SaveDir:      saveDir,
		BaseURL:      baseURL,
		Endpoint:     cfg.Endpoint,
		Bucket:       cfg.Bucket,
		Region:       cfg.Region,
		Prefix:       cfg.Prefix,
		UsePathStyle: cfg.UsePathStyle,
	}
}

// S3Enabled 是否配置了对象存储
func (s *ImageStore) S3Enabled() bool {
	return s.Bucket != ""
}

// InitS3 初始化 S3 客户端
func (s *ImageStore) InitS3(ctx context.Context) error {
	cfg := appconfig.Get().S3

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretAccessKey, "",
		)),
	)
	if err != nil {
		return fmt.Errorf("加载 S3 配置失败: %w", err)
	}

	s.s3Client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = &cfg.Endpoint
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return nil
}

// SaveImage 保存图片到本地并返回图片URL（debug/未配置 S3 时使用）
func (s *ImageStore) SaveImage(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := os.MkdirAll(s.SaveDir, os.ModePerm); err != nil {
		return "", err
	}

	// 生成唯一文件名
	ext := filepath.Ext(fileHeader.Filename)
	filename := fmt.Sprintf("%d%s", time.Now().UnixNano(), ext)
	filePath := filepath.Join(s.SaveDir, filename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}

	return s.BaseURL + "/" + filename, nil
}
