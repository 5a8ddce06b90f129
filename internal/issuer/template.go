package issuer

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/SeakMengs/FacultyCert/internal/model"
	"github.com/SeakMengs/FacultyCert/pkg/facultycert"
	"gorm.io/gorm"
)

// loadTemplate returns the requested template, or the default one when templateID is empty.
func (i *Issuer) loadTemplate(ctx context.Context, templateID string) (*model.CertificateTemplate, facultycert.Template, error) {
	var (
		record *model.CertificateTemplate
		err    error
	)

	if templateID != "" {
		record, err = i.Templates.GetById(ctx, nil, templateID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, facultycert.Template{}, fmt.Errorf("%w: %s", ErrTemplateNotFound, templateID)
		}
	} else {
		record, err = i.Templates.GetDefault(ctx, nil)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, facultycert.Template{}, ErrNoTemplateAvailable
		}
	}
	if err != nil {
		return nil, facultycert.Template{}, fmt.Errorf("failed to load template: %w", err)
	}

	return record, i.renderTemplate(ctx, record), nil
}

// renderTemplate converts the record and attaches its images. An image that cannot be
// read is left out and logged, the composer treats it as absent.
func (i *Issuer) renderTemplate(ctx context.Context, record *model.CertificateTemplate) facultycert.Template {
	tmpl := record.ToTemplate()
	if tmpl.RecipientLine == "" {
		tmpl.RecipientLine = i.cfg.DefaultRecipient
	}

	tmpl.Logo = i.readAsset(ctx, "logo", record.LogoFile)
	tmpl.Signature = i.readAsset(ctx, "signature", record.SignatureFile)
	tmpl.Background = i.readAsset(ctx, "background", record.BackgroundFile)

	return tmpl
}

func (i *Issuer) readAsset(ctx context.Context, name string, file *model.File) []byte {
	if file == nil || i.storage == nil {
		return nil
	}

	obj, err := i.storage.Open(ctx, *file)
	if err != nil {
		i.logger.Warnf("failed to open template %s %s: %v", name, file.UniqueFileName, fmt.Errorf("%w: %w", facultycert.ErrAssetUnreadable, err))
		return nil
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		i.logger.Warnf("failed to read template %s %s: %v", name, file.UniqueFileName, fmt.Errorf("%w: %w", facultycert.ErrAssetUnreadable, err))
		return nil
	}

	return data
}
