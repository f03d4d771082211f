package mysql

// Repository aggregates all MySQL repositories
type Repository struct {
	ds *Datastore

	Category    *CategoryRepository
	Template    *TemplateRepository
	Product     *ProductRepository
	ProductSpec *ProductSpecRepository
	Rule        *RuleRepository
}

// NewRepository creates a new MySQL repository with all sub-repositories
func NewRepository(dsn string) (*Repository, error) {
	ds, err := NewDatastore(dsn)
	if err != nil {
		return nil, err
	}

	return &Repository{
		ds:          ds,
		Category:    NewCategoryRepository(ds),
		Template:    NewTemplateRepository(ds),
		Product:     NewProductRepository(ds),
		ProductSpec: NewProductSpecRepository(ds),
		Rule:        NewRuleRepository(ds),
	}, nil
}

// GetDatastore returns the underlying datastore for transaction support
func (r *Repository) GetDatastore() *Datastore {
	return r.ds
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.ds.Close()
}
