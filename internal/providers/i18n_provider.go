package providers

import (
	"profiled/internal/i18n"
	"profiled/internal/structures"
)

func NewI18nProvider(conf *structures.Config, logger Logger) (*i18n.Catalog, error) {
	catalog, err := i18n.NewCatalog(conf.History.DefaultLang)
	if err != nil {
		return nil, err
	}
	logger.Infof(TypeApp, "Default language: %s", catalog.Language())
	return catalog, nil
}
