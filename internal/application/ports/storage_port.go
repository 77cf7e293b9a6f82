package ports

import "context"

// ObjectStorage almacenamiento de los XML/ZIP originales (S3 compatible).
type ObjectStorage interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Usage suma bytes y cantidad de objetos bajo el prefijo.
	Usage(ctx context.Context, prefix string) (bytes int64, objects int, err error)
}
