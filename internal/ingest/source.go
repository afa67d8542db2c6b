package ingest

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
)

// Source отдаёт строки транспорта по одной, в порядке поступления.
// Next блокируется до следующей строки; io.EOF — транспорт закончился.
type Source interface {
	Next(ctx context.Context) (string, error)
	Close() error
}

var (
	ErrSourceClosed = errors.New("ingest: source closed")
	// ErrLineTooLong — строка отброшена, источник продолжает читать.
	ErrLineTooLong = errors.New("ingest: line too long")
)

const (
	// MaxLineLength — предел строки вместе с терминатором. Кадр контроллера — десятки байт,
	// всё длиннее считаем мусором на линии.
	MaxLineLength  = 64 * 1024
	readBufferSize = 4096
)

type scanResult struct {
	line string
	err  error
}

// LineSource читает строки из io.ReadCloser (последовательный порт, файл, stdin).
// Чтение идёт в отдельной горутине, чтобы Next уважал ctx.
type LineSource struct {
	rc      io.ReadCloser
	results chan scanResult
	done    chan struct{}
	once    sync.Once
	start   sync.Once
}

func NewLineSource(rc io.ReadCloser) *LineSource {
	return &LineSource{
		rc:      rc,
		results: make(chan scanResult),
		done:    make(chan struct{}),
	}
}

func (s *LineSource) scan() {
	br := bufio.NewReaderSize(s.rc, readBufferSize)
	for {
		line, err := readLine(br, MaxLineLength)
		if err != nil && !errors.Is(err, ErrLineTooLong) {
			s.send(scanResult{err: err})
			return
		}
		if !s.send(scanResult{line: line, err: err}) {
			return
		}
	}
}

func (s *LineSource) send(r scanResult) bool {
	select {
	case s.results <- r:
		return true
	case <-s.done:
		return false
	}
}

// readLine читает строку до \n без терминатора (и \r перед ним). Строка длиннее limit
// дочитывается до конца и отбрасывается целиком, вместо неё — ErrLineTooLong.
// Хвост без \n перед EOF отдаётся как обычная строка.
func readLine(br *bufio.Reader, limit int) (string, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, err := br.ReadSlice('\n')
		if !tooLong {
			if len(buf)+len(chunk) > limit {
				tooLong, buf = true, nil
			} else {
				buf = append(buf, chunk...)
			}
		}

		switch {
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		case err == nil:
		case errors.Is(err, io.EOF) && (tooLong || len(buf) > 0):
		default:
			return "", err
		}

		if tooLong {
			return "", ErrLineTooLong
		}
		buf = bytes.TrimSuffix(buf, []byte("\n"))
		buf = bytes.TrimSuffix(buf, []byte("\r"))
		return string(buf), nil
	}
}

func (s *LineSource) Next(ctx context.Context) (string, error) {
	s.start.Do(func() { go s.scan() })
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-s.done:
		return "", ErrSourceClosed
	case r := <-s.results:
		return r.line, r.err
	}
}

func (s *LineSource) Close() error {
	var err error
	s.once.Do(func() {
		close(s.done)
		err = s.rc.Close()
	})
	return err
}
