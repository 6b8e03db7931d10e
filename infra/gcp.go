package infra

import (
	"io"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/cockroachdb/errors"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const metadataProjectIdUrl = "http://metadata.google.internal/computeMetadata/v1/project/project-id"

// One slot, no expiry: the project id cannot change while the process runs.
var projectIdCache = expirable.NewLRU[string, string](1, nil, 0)

// GetProjectId resolves the GCP project from the metadata server, for
// deployments that do not set GOOGLE_CLOUD_PROJECT explicitly.
func GetProjectId() (string, error) {
	if projectId, ok := projectIdCache.Get("project_id"); ok {
		return projectId, nil
	}

	var projectId string
	err := retry.Do(
		func() error {
			var err error
			projectId, err = queryMetadataServer()
			return err
		},
		retry.Attempts(3),
		retry.LastErrorOnly(true),
		retry.Delay(100*time.Millisecond),
	)

	projectIdCache.Add("project_id", projectId)
	return projectId, err
}

func queryMetadataServer() (string, error) {
	req, err := http.NewRequest(http.MethodGet, metadataProjectIdUrl, nil)
	if err != nil {
		return "", err
	}
	req.Header.Add("Metadata-Flavor", "Google")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		// The metadata host only resolves on a GCP VM. Anywhere else the
		// dial fails immediately, so give up rather than retry.
		return "", nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf("metadata server answered %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
