package datastore

import (
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// s3Store fetches payloads from S3 URIs of the form s3://<bucket>/<key>.
// Credentials and region come from the usual AWS environment/config chain.
type s3Store struct {
	client s3iface.S3API
	once   sync.Once
}

func (s *s3Store) api() s3iface.S3API {
	s.once.Do(func() {
		if s.client == nil {
			sess := session.Must(session.NewSessionWithOptions(session.Options{
				SharedConfigState: session.SharedConfigEnable,
			}))
			s.client = s3.New(sess)
		}
	})
	return s.client
}

func (s *s3Store) Fetch(uri string, destDir string) (string, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	bucket := parsed.Host
	key := strings.TrimPrefix(parsed.Path, "/")
	if bucket == "" || key == "" {
		return "", fmt.Errorf("S3 data location %s must have the form s3://<bucket>/<key>", uri)
	}

	output, err := s.api().GetObject(&s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("S3 download of %s failed: %w", uri, err)
	}
	defer func() { _ = output.Body.Close() }()
	content, err := io.ReadAll(output.Body)
	if err != nil {
		return "", fmt.Errorf("S3 download of %s failed: %w", uri, err)
	}
	return writePayload(destDir, localName(parsed), content)
}
