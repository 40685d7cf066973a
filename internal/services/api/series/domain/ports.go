package domain

import "context"

// ServicePort is the catalog as the http layer sees it
type ServicePort interface {
	List(ctx context.Context, limit int) (ListResult, error)
	Get(ctx context.Context, externalID string) (Series, error)
	RetrieveMultiple(ctx context.Context, ids []string) ([]Series, error)
}

// Retriever is the port other modules use to resolve ids in order
type Retriever interface {
	RetrieveMultiple(ctx context.Context, ids []string) ([]Series, error)
}
