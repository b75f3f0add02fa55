package providers

import (
	"errors"
	"fmt"
	"github.com/gookit/validate"
	"profiled/internal/lookback"
	"profiled/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return v.Errors
	}

	if c.conf.Storage.Driver == "sqlite" && c.conf.Storage.Path == "" {
		return errors.New("storage.path is required for the sqlite driver")
	}

	if c.conf.History.DefaultWindow != "" {
		if _, err := lookback.ResolveBySelectionLabel(c.conf.History.DefaultWindow); err != nil {
			return fmt.Errorf("history.defaultWindow: %w", err)
		}
	}
	return nil
}
