package document

import (
	"errors"

	documenterrors "github.com/heyyrintu/hrms-sub001/internal/document/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return documenterrors.ErrDocumentNotFound
	}
	return err
}
