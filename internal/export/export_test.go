package export

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apresai/adgenius/internal/answers"
	"github.com/apresai/adgenius/internal/creative"
	"github.com/apresai/adgenius/internal/insight"
)

func sampleBrief() Brief {
	s := insight.Extract(answers.New(map[answers.Question]string{
		answers.ProblemSolution:     "A serum for dry skin",
		answers.PurchaseInvolvement: "high",
	}))
	return Brief{
		Signals:   s,
		Result:    creative.Fallback(s, insight.SelectStrategy(s)),
		Source:    "fallback",
		Generated: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestCopyText(t *testing.T) {
	got := CopyText(creative.AdCopy{
		Headlines: []string{"First", "Second"},
		BodyCopy:  creative.BodyCopy{Opening: "Hi", Middle: "There", Closing: "Bye"},
		CTAs:      []string{"Buy"},
	})
	assert.True(t, strings.HasPrefix(got, "ADGENIUS AI - GENERATED COPY\n============================\n"))
	assert.Contains(t, got, "1. First\n2. Second\n")
	assert.Contains(t, got, "Middle: There\n")
	assert.Contains(t, got, "- Buy\n")
}

func TestBriefText(t *testing.T) {
	got := BriefText(sampleBrief())
	assert.Contains(t, got, "ADGENIUS AI - CREATIVE BRIEF")
	assert.Contains(t, got, "Generated: Sat, 01 Mar 2025 12:00:00 UTC")
	assert.Contains(t, got, "Product: serum")
	assert.Contains(t, got, "Ratio: 70% Rational, 30% Emotional")
	assert.Contains(t, got, "**Context/Setting:** bathroom or vanity area")
	assert.Contains(t, got, "Hero: Professional beauty/personal care product photography of serum in bathroom or vanity area")
	assert.Contains(t, got, "CTA OPTIONS")
}

func TestRender(t *testing.T) {
	b := sampleBrief()
	assert.Equal(t, CopyText(b.Result.Copy), Render(KindCopy, b))
	assert.Equal(t, BriefText(b), Render(KindBrief, b))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("copy")
	require.NoError(t, err)
	assert.Equal(t, "adgenius-copy.txt", k.Filename())
	_, err = ParseKind("pdf")
	assert.Error(t, err)
}

type fakeS3 struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = in
	data, _ := io.ReadAll(in.Body)
	f.body = string(data)
	return &s3.PutObjectOutput{}, f.err
}

func TestStorageUpload(t *testing.T) {
	client := &fakeS3{}
	st := NewStorage(client, "bucket", "https://cdn.example.com/")

	key, url, err := st.Upload(context.Background(), KindBrief, "hello")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "exports/brief/"))
	assert.True(t, strings.HasSuffix(key, ".txt"))
	assert.Equal(t, "https://cdn.example.com/"+key, url)
	assert.Equal(t, "hello", client.body)
	assert.Equal(t, "bucket", *client.input.Bucket)
	assert.Equal(t, int64(5), *client.input.ContentLength)

	_, url, err = NewStorage(client, "b2", "").Upload(context.Background(), KindCopy, "x")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "https://b2.s3.amazonaws.com/exports/copy/"))
}

func TestStorageUploadError(t *testing.T) {
	st := NewStorage(&fakeS3{err: errors.New("denied")}, "bucket", "")
	_, _, err := st.Upload(context.Background(), KindCopy, "x")
	assert.ErrorContains(t, err, "upload to s3: denied")
}
