package splitter

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/tokensplit/internal/chunker"
	"github.com/dshills/tokensplit/internal/rowpacker"
	"github.com/dshills/tokensplit/internal/segment"
	"github.com/dshills/tokensplit/internal/token"
	"github.com/dshills/tokensplit/pkg/types"
)

// Options configures one split operation. Zero values take defaults:
// paragraph segmentation, line counting mode, CSV dialect, base name
// derived from the source.
type Options struct {
	// Budget is the token budget per chunk/part. Must be positive.
	Budget int

	// Token selects the counting capability for the operation.
	Token token.Config

	// Mode is the text segmentation strategy.
	Mode segment.Mode

	// CountMode is the tabular row counting mode.
	CountMode rowpacker.CountMode

	// Dialect describes the tabular format.
	Dialect rowpacker.Dialect

	// OutDir, when set, makes the operation write each body to a
	// numbered file there.
	OutDir string

	// BaseName overrides the output base name.
	BaseName string

	// Ext is the output extension for tabular parts, including the dot.
	Ext string
}

func (o Options) mode() segment.Mode {
	if o.Mode == "" {
		return segment.ModeParagraph
	}
	return o.Mode
}

func (o Options) countMode() rowpacker.CountMode {
	if o.CountMode == "" {
		return rowpacker.CountLine
	}
	return o.CountMode
}

func (o Options) ext() string {
	if o.Ext == "" {
		return ".csv"
	}
	return o.Ext
}

func (o Options) baseName(fallback string) string {
	if o.BaseName != "" {
		return o.BaseName
	}
	return fallback
}

// PartFileName returns the output file name for the part with the given
// 1-based index: {base}_part{NNN}{ext}.
func PartFileName(base string, index int, ext string) string {
	return fmt.Sprintf("%s_part%03d%s", base, index, ext)
}

// SplitText segments text under the configured strategy and packs the units
// into token-bounded chunks.
func SplitText(ctx context.Context, text string, opts Options) (*types.Result, error) {
	// Budget is validated before any segmentation, counting, or I/O.
	if opts.Budget <= 0 {
		return nil, fmt.Errorf("%w: got %d", types.ErrInvalidBudget, opts.Budget)
	}

	mode := opts.mode()
	seg, err := segment.ForMode(mode)
	if err != nil {
		return nil, err
	}

	counter := token.NewCounter(opts.Token)
	defer func() { _ = counter.Close() }()

	units := seg.Segment(text)
	result := &types.Result{
		Source:   "text",
		Kind:     "text",
		Strategy: string(mode),
		Budget:   opts.Budget,
	}

	// Empty or whitespace-only input segments to a single empty unit;
	// there is nothing to pack or write.
	if len(units) == 1 && units[0] == "" {
		return result, nil
	}

	packer, err := chunker.New(counter, opts.Budget, mode)
	if err != nil {
		return nil, err
	}
	chunks, err := packer.Pack(units)
	if err != nil {
		return nil, err
	}

	for _, ch := range chunks {
		result.Bodies = append(result.Bodies, ch.Text)
		result.TokenCounts = append(result.TokenCounts, ch.TokenCount)
	}

	if err := writeBodies(result, opts, opts.baseName("text"), ".txt", false); err != nil {
		return nil, err
	}
	return result, nil
}

// SplitCSV streams tabular lines from r and packs the rows into
// header-carrying, token-bounded parts.
func SplitCSV(ctx context.Context, r io.Reader, opts Options) (*types.Result, error) {
	if opts.Budget <= 0 {
		return nil, fmt.Errorf("%w: got %d", types.ErrInvalidBudget, opts.Budget)
	}

	counter := token.NewCounter(opts.Token)
	defer func() { _ = counter.Close() }()

	packer, err := rowpacker.New(counter, opts.Budget, opts.countMode(), opts.Dialect)
	if err != nil {
		return nil, err
	}
	parts, err := packer.Pack(r)
	if err != nil {
		return nil, err
	}

	result := &types.Result{
		Source:   "tabular",
		Kind:     "tabular",
		Strategy: string(opts.countMode()),
		Budget:   opts.Budget,
	}
	for _, part := range parts {
		result.Bodies = append(result.Bodies, part.Body())
		result.TokenCounts = append(result.TokenCounts, part.TokenCount)
	}

	if err := writeBodies(result, opts, opts.baseName("table"), opts.ext(), true); err != nil {
		return nil, err
	}
	return result, nil
}

// SplitFile splits the file at path, routing .csv and .tsv sources through
// the row packer and everything else through the text path. Part files are
// written next to opts.OutDir when set.
func SplitFile(ctx context.Context, path string, opts Options) (*types.Result, error) {
	if opts.Budget <= 0 {
		return nil, fmt.Errorf("%w: got %d", types.ErrInvalidBudget, opts.Budget)
	}
	if err := statSource(path); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".csv" || ext == ".tsv" {
		return SplitCSVFile(ctx, path, opts)
	}

	opts.BaseName = opts.baseName(stemOf(path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	result, err := SplitText(ctx, string(data), opts)
	if err != nil {
		return nil, err
	}
	result.Source = path
	return result, nil
}

// SplitCSVFile splits the file at path through the row packer regardless of
// its extension. Parts keep the source extension when it has one.
func SplitCSVFile(ctx context.Context, path string, opts Options) (*types.Result, error) {
	if opts.Budget <= 0 {
		return nil, fmt.Errorf("%w: got %d", types.ErrInvalidBudget, opts.Budget)
	}
	if err := statSource(path); err != nil {
		return nil, err
	}

	if strings.ToLower(filepath.Ext(path)) == ".tsv" && opts.Dialect.Delimiter == 0 {
		opts.Dialect.Delimiter = '\t'
	}
	if ext := filepath.Ext(path); ext != "" {
		opts.Ext = ext
	}
	opts.BaseName = opts.baseName(stemOf(path))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	result, err := SplitCSV(ctx, f, opts)
	if err != nil {
		return nil, err
	}
	result.Source = path
	return result, nil
}

// statSource verifies path names an existing regular file.
func statSource(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", types.ErrInputNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", types.ErrInputNotFound, path)
	}
	return nil
}

// stemOf returns the file name without its extension.
func stemOf(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// writeBodies emits the result's bodies as numbered files under
// opts.OutDir. Text bodies get a trailing newline; tabular bodies already
// carry their line terminators.
func writeBodies(result *types.Result, opts Options, base, ext string, rawBody bool) error {
	if opts.OutDir == "" || len(result.Bodies) == 0 {
		return nil
	}

	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for i, body := range result.Bodies {
		name := PartFileName(base, i+1, ext)
		path := filepath.Join(opts.OutDir, name)
		if !rawBody {
			body += "\n"
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		result.Files = append(result.Files, path)
	}
	return nil
}
