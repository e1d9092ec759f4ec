// Package corpus reads the analyzed mail records that organizations are derived from.
package corpus

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"orgdir/internal/model"
)

// Source returns the full record set. Callers never mutate the result.
type Source interface {
	Records(ctx context.Context) ([]model.MailRecord, error)
}

// Static serves a fixed slice.
type Static []model.MailRecord

func (s Static) Records(context.Context) ([]model.MailRecord, error) {
	out := make([]model.MailRecord, len(s))
	copy(out, s)
	return out, nil
}

// JSONLFile reads one JSON mail record per line. A missing file is an empty corpus.
type JSONLFile struct {
	Path string
}

func (f JSONLFile) Records(ctx context.Context) ([]model.MailRecord, error) {
	path := strings.TrimSpace(f.Path)
	if path == "" {
		return []model.MailRecord{}, nil
	}
	fh, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []model.MailRecord{}, nil
		}
		return nil, err
	}
	defer fh.Close()

	sc := bufio.NewScanner(fh)
	sc.Buffer(make([]byte, 0, 64*1024), 10*1024*1024)

	out := []model.MailRecord{}
	lineNo := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		lineNo++
		b := bytes.TrimSpace(sc.Bytes())
		if len(b) == 0 {
			continue
		}
		var rec model.MailRecord
		if err := json.Unmarshal(b, &rec); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		out = append(out, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
