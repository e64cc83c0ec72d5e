package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/gg"

	"github.com/matzehuels/figtex/pkg/errors"
	"github.com/matzehuels/figtex/pkg/figure"
)

// ReadJSON decodes a JSON figure description from r.
//
// Unknown fields are rejected so that typos do not silently drop content.
// The returned figure has not been laid out. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*figure.Figure, error) {
	var d description
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode JSON")
	}
	return build(d)
}

// ReadTOML decodes a TOML figure description from r. Undecoded keys are an
// error, as in [ReadJSON].
func ReadTOML(r io.Reader) (*figure.Figure, error) {
	var d description
	md, err := toml.NewDecoder(r).Decode(&d)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode TOML")
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown keys: %s", strings.Join(names, ", "))
	}
	return build(d)
}

// Import reads the figure description at path. The decoder is chosen by
// extension: .json or .toml.
func Import(path string) (*figure.Figure, error) {
	read, err := readerFor(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "figure description %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	fig, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return fig, nil
}

func readerFor(path string) (func(io.Reader) (*figure.Figure, error), error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ReadJSON, nil
	case ".toml":
		return ReadTOML, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported description format %q (want .json or .toml)", ext)
	}
}

func build(d description) (*figure.Figure, error) {
	var opts []figure.Option
	if d.Journal != "" {
		j, ok := figure.LookupJournal(d.Journal)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "unknown journal %q (known: %s)",
				d.Journal, strings.Join(figure.JournalNames(), ", "))
		}
		opts = append(opts, figure.WithJournal(j))
	}
	if (d.Width > 0) != (d.Height > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "width and height must be given together")
	}
	if d.Width < 0 || d.Height < 0 || d.DPI < 0 || d.FontSize < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "sizes must be positive")
	}
	opts = append(opts, figure.WithSize(d.Width, d.Height), figure.WithDPI(d.DPI), figure.WithFontSize(d.FontSize))
	if d.Facecolor != "" {
		c, err := parseColor(d.Facecolor)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "facecolor")
		}
		opts = append(opts, figure.WithFacecolor(c))
	}
	fig := figure.New(opts...)

	for i, td := range d.Texts {
		t := figure.NewText(td.Text, gg.Pt(td.X, td.Y), figure.CoordsFigure)
		if err := applyText(t, td); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "text %d", i)
		}
		if t.Coords != figure.CoordsFigure && t.Coords != figure.CoordsDisplay {
			return nil, errors.New(errors.ErrCodeInvalidInput, "text %d: %s coordinates need an axes", i, t.Coords)
		}
		fig.Add(t)
	}

	for i, ad := range d.Axes {
		if err := buildAxes(fig, ad); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "axes %d", i)
		}
	}
	return fig, nil
}

func buildAxes(fig *figure.Figure, d axesDesc) error {
	if len(d.Rect) != 4 {
		return fmt.Errorf("rect needs 4 values [x, y, w, h], got %d", len(d.Rect))
	}
	if d.Rect[2] <= 0 || d.Rect[3] <= 0 {
		return fmt.Errorf("rect width and height must be positive")
	}
	ax := fig.AddAxes(figure.Rect{X: d.Rect[0], Y: d.Rect[1], W: d.Rect[2], H: d.Rect[3]})

	if d.XLim != nil {
		if len(d.XLim) != 2 {
			return fmt.Errorf("xlim needs 2 values")
		}
		ax.SetXLim(d.XLim[0], d.XLim[1])
	}
	if d.YLim != nil {
		if len(d.YLim) != 2 {
			return fmt.Errorf("ylim needs 2 values")
		}
		ax.SetYLim(d.YLim[0], d.YLim[1])
	}
	ax.SetTitle(d.Title)
	ax.SetXLabel(d.XLabel)
	ax.SetYLabel(d.YLabel)

	if d.XTicks != nil {
		values, labels := splitTicks(d.XTicks)
		if err := ax.SetXTicks(values, labels); err != nil {
			return fmt.Errorf("xticks: %w", err)
		}
	}
	if d.YTicks != nil {
		values, labels := splitTicks(d.YTicks)
		if err := ax.SetYTicks(values, labels); err != nil {
			return fmt.Errorf("yticks: %w", err)
		}
	}

	for j, ld := range d.Lines {
		if len(ld.X) != len(ld.Y) {
			return fmt.Errorf("line %d: %d x values but %d y values", j, len(ld.X), len(ld.Y))
		}
		l := ax.Plot(ld.X, ld.Y)
		if ld.Color != "" {
			c, err := parseColor(ld.Color)
			if err != nil {
				return fmt.Errorf("line %d: %w", j, err)
			}
			l.Color = c
		}
		if ld.Width > 0 {
			l.Width = ld.Width
		}
	}

	for j, td := range d.Texts {
		if err := applyText(ax.AddText(td.X, td.Y, td.Text), td); err != nil {
			return fmt.Errorf("text %d: %w", j, err)
		}
	}
	for j, td := range d.Annotations {
		if err := applyText(ax.Annotate(td.Text, td.X, td.Y), td); err != nil {
			return fmt.Errorf("annotation %d: %w", j, err)
		}
	}
	return nil
}

// splitTicks returns nil labels when no tick names one, so the values are
// formatted instead.
func splitTicks(ticks []tickDesc) ([]float64, []string) {
	values := make([]float64, len(ticks))
	var labels []string
	for i, t := range ticks {
		values[i] = t.Value
		if t.Label != nil && labels == nil {
			labels = make([]string, len(ticks))
			for k := range i {
				labels[k] = formatTick(ticks[k].Value)
			}
		}
		if labels != nil {
			if t.Label != nil {
				labels[i] = *t.Label
			} else {
				labels[i] = formatTick(t.Value)
			}
		}
	}
	return values, labels
}

func applyText(t *figure.Text, d textDesc) error {
	if d.Coords != "" {
		c, err := figure.ParseCoords(d.Coords)
		if err != nil {
			return err
		}
		t.Coords = c
	}
	if d.Offset != nil {
		if len(d.Offset) != 2 {
			return fmt.Errorf("offset needs 2 values")
		}
		t.Offset = gg.Pt(d.Offset[0], d.Offset[1])
	}
	if d.Color != "" {
		c, err := parseColor(d.Color)
		if err != nil {
			return err
		}
		t.Color = c
	}
	if d.Rotation != 0 {
		t.Rotation = d.Rotation
	}
	if d.VA != "" {
		v, err := figure.ParseVAlign(d.VA)
		if err != nil {
			return err
		}
		t.VAlign = v
	}
	if d.HA != "" {
		h, err := figure.ParseHAlign(d.HA)
		if err != nil {
			return err
		}
		t.HAlign = h
	}
	if d.Visible != nil {
		t.Visible = *d.Visible
	}
	if d.Clip != nil {
		t.ClipOn = *d.Clip
	}
	if d.FontSize < 0 {
		return fmt.Errorf("font_size must be positive")
	}
	if d.FontSize > 0 {
		t.FontSize = d.FontSize
	}
	return nil
}
