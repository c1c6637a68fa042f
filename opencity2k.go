package opencity2k

import (
	"io"
	"os"
	"runtime"

	"github.com/sirupsen/logrus"
)

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

// Options tunes an OpenCity. The zero value picks defaults.
type Options struct {
	// Workers is the number of cities decoded concurrently by Scan
	Workers int
	// CacheSize is the number of summaries kept in memory
	CacheSize int64
}

// OpenCity maintains an index of city files.
type OpenCity struct {
	db      *CityDB
	cache   *SummaryCache
	logger  logrus.FieldLogger
	workers int
}

// New opens the index in dbFile.
func New(dbFile string, logger logrus.FieldLogger, opts Options) (*OpenCity, error) {
	if logger == nil {
		logger = discardLogger
	}

	db, err := NewCityDB(dbFile)
	if err != nil {
		return nil, err
	}

	cache, err := NewSummaryCache(opts.CacheSize)
	if err != nil {
		db.Close()
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &OpenCity{
		db:      db,
		cache:   cache,
		logger:  logger,
		workers: workers,
	}, nil
}

// Close releases the index.
func (o *OpenCity) Close() error {
	o.cache.Close()
	return o.db.Close()
}

// DB returns the underlying index.
func (o *OpenCity) DB() *CityDB {
	return o.db
}

// Report returns the summary of the city file at path, decoding it only if
// the same file contents have not been seen recently.
func (o *OpenCity) Report(path string) (*Summary, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	crc := Checksum(b)

	if s, ok := o.cache.Get(crc); ok {
		o.logger.WithField("crc", crc).Debug("Summary cache hit")
		return s, crc, nil
	}

	c, err := Decode(b, DecodeOptions{Logger: o.logger.WithField("file", path)})
	if err != nil {
		return nil, crc, err
	}
	if c.Name == "" {
		c.Name = nameFromFile(path)
	}

	s := Summarize(c)
	o.cache.Set(crc, &s)

	return &s, crc, nil
}
