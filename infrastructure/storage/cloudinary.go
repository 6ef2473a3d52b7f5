package storage

//go:generate mockgen -source=cloudinary.go -destination=mocks/uploader.go -package=mocks

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/benefits-club-api/internal/config"
	"github.com/vfg2006/benefits-club-api/pkg/utils"
)

var ErrUploadDisabled = errors.New("upload de arquivos não configurado")

// Uploader envia um arquivo e devolve a URL pública dele
type Uploader interface {
	Upload(ctx context.Context, filename string, file io.Reader) (string, error)
}

type cloudinaryUploader struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryUploader(cfg config.Cloudinary) (Uploader, error) {
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao inicializar cloudinary")
	}
	cld.Config.URL.Secure = true

	return &cloudinaryUploader{
		cld:    cld,
		folder: cfg.Folder,
	}, nil
}

func (u *cloudinaryUploader) Upload(ctx context.Context, filename string, file io.Reader) (string, error) {
	name, err := utils.GenerateFileName(filepath.Ext(filename))
	if err != nil {
		return "", err
	}
	publicID := strings.TrimSuffix(name, filepath.Ext(name))

	resp, err := u.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   u.folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", errors.Wrapf(err, "erro ao enviar %s", filename)
	}
	if resp.Error.Message != "" {
		return "", errors.Errorf("cloudinary recusou %s: %s", filename, resp.Error.Message)
	}

	logrus.WithFields(logrus.Fields{
		"public_id": resp.PublicID,
		"bytes":     resp.Bytes,
	}).Info("Logo enviado para o Cloudinary")

	return resp.SecureURL, nil
}

type disabledUploader struct{}

// NewDisabledUploader é usado quando não há credenciais do Cloudinary.
// Todo upload falha com ErrUploadDisabled e o benefício é salvo sem logo.
func NewDisabledUploader() Uploader {
	return disabledUploader{}
}

func (disabledUploader) Upload(context.Context, string, io.Reader) (string, error) {
	return "", ErrUploadDisabled
}
