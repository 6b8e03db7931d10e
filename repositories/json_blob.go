package repositories

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// writeJsonBlob replaces fileName with the indented JSON encoding of payload.
// The write context is canceled on encoding failure so the blob driver aborts
// instead of committing a truncated document.
func writeJsonBlob(ctx context.Context, blobRepository BlobRepository, bucketUrl, fileName string, payload any) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	writer, err := blobRepository.OpenStream(ctx, bucketUrl, fileName)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(payload); err != nil {
		cancel()
		_ = writer.Close()
		return errors.Wrapf(err, "failed to encode %s", fileName)
	}
	return errors.Wrapf(writer.Close(), "failed to write %s", fileName)
}
