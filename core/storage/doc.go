// Package storage provides the object storage client used for backups.
//
// Exported documents can optionally be pushed to an S3-compatible bucket
// (MinIO, AWS S3, etc.) and restored from it later. The Client interface
// wraps the minio SDK with only the operations the backup sink needs, which
// keeps it mockable in tests (see the mocks subpackage).
package storage
