package services

import "context"

// MediaStore is the slice of the media layer the services need: presigned
// upload/download URLs and object removal. Satisfied by *media.Store.
type MediaStore interface {
	PresignPut(ctx context.Context, prefix string) (key string, url string, err error)
	PresignGet(ctx context.Context, key string) (url string, err error)
	Delete(ctx context.Context, key string) error
}
