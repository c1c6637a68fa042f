package opencity2k

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var errScanCancelled = errors.New("scan cancelled")

// Extensions of city and scenario files
var cityExtensions = map[string]struct{}{
	".sc2": {},
	".scn": {},
}

// Ignore any file greater than this, no city comes close
const maxCitySize = 4 << (10 * 2)

func isCityFile(name string) bool {
	_, ok := cityExtensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

func (o *OpenCity) findCities(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Skip dot files and directories, saved games never live there
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || info.Size() > maxCitySize || !isCityFile(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errScanCancelled
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (o *OpenCity) cityWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			logger := o.logger.WithField("file", file)

			s, crc, err := o.Report(file)
			if err != nil {
				// A broken city should not stop the scan
				logger.WithError(err).Warn("Skipping unreadable city")
				continue
			}

			id, err := o.db.AddCity(crc, file, s)
			if err != nil {
				errc <- err
				return
			}
			logger.WithFields(logrus.Fields{
				"id":   id,
				"crc":  crc,
				"name": s.Name,
			}).Info("Indexed city")
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks path indexing every city and scenario file found.
func (o *OpenCity) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := o.findCities(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < o.workers; i++ {
		errc, err := o.cityWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
