// Package artifact persists per-band renders between the band workers and the
// stitcher. Artifacts live in a blob bucket under a per-render run prefix and
// carry their band index as blob metadata.
package artifact

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
)

// DefaultLocation is the intermediate directory used when none is configured.
const DefaultLocation = "stitch"

// NoBand marks an artifact whose band index could not be determined.
// Such artifacts sort after every indexed one.
const NoBand = math.MaxInt

const bandKey = "band"

// Artifact identifies one persisted band image.
type Artifact struct {
	Key    string
	Band   int
	Format Format
}

// Name returns the file name of band i's artifact, e.g. "stitch_2.png".
func Name(band int, f Format) string {
	return "stitch_" + strconv.Itoa(band) + f.Ext()
}

// BandFromName extracts the decimal digits of a file stem, so "stitch_10.png"
// yields 10. Indices need not be zero-padded.
func BandFromName(name string) (int, bool) {
	stem := strings.TrimSuffix(path.Base(name), path.Ext(name))
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, stem)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}

// SortByBand orders artifacts by numeric band index. Unindexed artifacts go
// last, in key order.
func SortByBand(arts []Artifact) {
	slices.SortStableFunc(arts, func(a, b Artifact) int {
		if a.Band != b.Band {
			if a.Band < b.Band {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Key, b.Key)
	})
}

// OpenBucket opens the artifact bucket at location. A location with a URL
// scheme (mem://, file://, gs://) goes through the blob URL mux; anything
// else is a local directory, created if absent.
func OpenBucket(ctx context.Context, location string) (*blob.Bucket, error) {
	if location == "" {
		location = DefaultLocation
	}
	if strings.Contains(location, "://") {
		b, err := blob.OpenBucket(ctx, location)
		if err != nil {
			return nil, fmt.Errorf("artifact: open %s: %w", location, err)
		}
		return b, nil
	}

	dir, err := localDir(location)
	if err != nil {
		return nil, err
	}
	b, err := fileblob.OpenBucket(dir, nil)
	if err != nil {
		return nil, fmt.Errorf("artifact: open %s: %w", dir, err)
	}
	return b, nil
}

func localDir(location string) (string, error) {
	dir, err := filepath.Abs(location)
	if err != nil {
		return "", fmt.Errorf("artifact: resolve %s: %w", location, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("artifact: create %s: %w", dir, err)
	}
	return dir, nil
}

// Store reads and writes the artifacts of one render run.
// Put may be called concurrently: each band writes its own key.
type Store struct {
	bucket *blob.Bucket
	run    string
	format Format

	// dir is the bucket's root for local directories, so Purge can drop the
	// emptied run directory. owned buckets are closed by Close.
	dir   string
	owned bool
}

// NewStore starts a new run in bucket. The bucket is not owned by the store.
func NewStore(bucket *blob.Bucket, format Format) *Store {
	return Reopen(bucket, uuid.NewString(), format)
}

// Reopen returns a store over the artifacts of an earlier run, such as one
// rendered with artifacts kept.
func Reopen(bucket *blob.Bucket, run string, format Format) *Store {
	if format == "" {
		format = PNG
	}
	return &Store{bucket: bucket, run: run, format: format}
}

// OpenStore opens the bucket at location (see OpenBucket) and starts a new
// run in it. The store owns the bucket; call Close when done.
func OpenStore(ctx context.Context, location string, format Format) (*Store, error) {
	bucket, err := OpenBucket(ctx, location)
	if err != nil {
		return nil, err
	}
	s := NewStore(bucket, format)
	s.owned = true
	if location == "" {
		location = DefaultLocation
	}
	if !strings.Contains(location, "://") {
		s.dir, _ = filepath.Abs(location)
	}
	return s, nil
}

// Close closes the bucket if the store opened it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.bucket.Close()
}

// Run returns the run id used as key prefix.
func (s *Store) Run() string {
	return s.run
}

// Put encodes img as the artifact of band.
func (s *Store) Put(ctx context.Context, band int, img image.Image) (Artifact, error) {
	a := Artifact{
		Key:    path.Join(s.run, Name(band, s.format)),
		Band:   band,
		Format: s.format,
	}

	// Canceling before Close discards a partially written blob.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	w, err := s.bucket.NewWriter(ctx, a.Key, &blob.WriterOptions{
		ContentType: s.format.ContentType(),
		Metadata:    map[string]string{bandKey: strconv.Itoa(band)},
	})
	if err != nil {
		return Artifact{}, fmt.Errorf("artifact: write %s: %w", a.Key, err)
	}
	if err := s.format.Encode(w, img); err != nil {
		cancel()
		w.Close()
		return Artifact{}, fmt.Errorf("artifact: encode %s: %w", a.Key, err)
	}
	if err := w.Close(); err != nil {
		return Artifact{}, fmt.Errorf("artifact: write %s: %w", a.Key, err)
	}
	return a, nil
}

// List returns the run's artifacts in band order. The band index comes from
// blob metadata; keys written without it fall back to the digits in the name.
func (s *Store) List(ctx context.Context) ([]Artifact, error) {
	var arts []Artifact
	it := s.bucket.List(&blob.ListOptions{Prefix: s.run + "/"})
	for {
		obj, err := it.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("artifact: list %s: %w", s.run, err)
		}
		if obj.IsDir {
			continue
		}

		f, err := FormatFor(obj.Key)
		if err != nil {
			return nil, err
		}
		band, err := s.band(ctx, obj.Key)
		if err != nil {
			return nil, err
		}
		arts = append(arts, Artifact{Key: obj.Key, Band: band, Format: f})
	}
	SortByBand(arts)
	return arts, nil
}

func (s *Store) band(ctx context.Context, key string) (int, error) {
	attrs, err := s.bucket.Attributes(ctx, key)
	if err != nil {
		return 0, fmt.Errorf("artifact: attributes %s: %w", key, err)
	}
	if v, ok := attrs.Metadata[bandKey]; ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("artifact: %s: bad band index %q", key, v)
		}
		return n, nil
	}
	if n, ok := BandFromName(key); ok {
		return n, nil
	}
	return NoBand, nil
}

// Get decodes the artifact's image.
func (s *Store) Get(ctx context.Context, a Artifact) (*image.NRGBA, error) {
	r, err := s.bucket.NewReader(ctx, a.Key, nil)
	if err != nil {
		return nil, fmt.Errorf("artifact: read %s: %w", a.Key, err)
	}
	defer r.Close()

	img, err := a.Format.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("artifact: %s: %w", a.Key, err)
	}
	return img, nil
}

// Purge deletes every artifact of the run.
func (s *Store) Purge(ctx context.Context) error {
	arts, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, a := range arts {
		if err := s.bucket.Delete(ctx, a.Key); err != nil {
			return fmt.Errorf("artifact: delete %s: %w", a.Key, err)
		}
	}
	if s.dir != "" {
		// Only succeeds once empty; leftovers not written by this run stay.
		runDir := filepath.Join(s.dir, filepath.FromSlash(s.run))
		if err := os.Remove(runDir); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("artifact: remove %s: %w", runDir, err)
		}
	}
	return nil
}
