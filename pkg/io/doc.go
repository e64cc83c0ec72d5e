// Package io reads and writes figure descriptions in JSON or TOML.
//
// # Overview
//
// A description lists the figure geometry, free texts in figure
// coordinates and a set of axes with their labels, ticks, lines and texts.
// It is what the figtex command line tool exports: the scene graph of a
// plot without any plotting library behind it.
//
// # Format
//
//	{
//	  "width": 3.46, "height": 2.6, "dpi": 100,
//	  "texts": [{"text": "DRAFT", "x": 0.5, "y": 0.5, "color": "#ff000000"}],
//	  "axes": [{
//	    "rect": [0.15, 0.15, 0.75, 0.7],
//	    "xlim": [0, 10], "ylim": [-1, 1],
//	    "title": "Damped oscillation",
//	    "xlabel": "$t$ [s]", "ylabel": "$x(t)$",
//	    "xticks": [{"value": 0}, {"value": 5}, {"value": 10}],
//	    "lines": [{"x": [0, 5, 10], "y": [1, -0.3, 0.1]}],
//	    "annotations": [{"text": "peak", "x": 0, "y": 1}]
//	  }]
//	}
//
// The same keys are used in TOML, with [[axes]] and [[axes.lines]] tables.
//
// # Fields
//
// Top level: width and height (inches, given together), dpi, journal (a
// preset name such as "epj" that sets the column width and font size),
// font_size, facecolor, texts, axes.
//
// Axes: rect ([x, y, w, h] in figure fraction, required), xlim, ylim,
// title, xlabel, ylabel, xticks and yticks (value with an optional label;
// without one the value is printed with %g), lines (x, y, color, width),
// texts (data coordinates, clipped) and annotations (centered just above the
// point).
//
// Text entries: text, x, y, and optionally coords (display, figure, axes,
// data, xaxis, yaxis), offset in points, color (#rgb, #rrggbb or #rrggbbaa),
// rotation in degrees, va (baseline, bottom, top, center, center_baseline),
// ha (left, right, center), visible, clip and font_size.
//
// # Errors
//
// Unknown keys, malformed colors and inconsistent arrays are rejected with
// [errors.ErrCodeInvalidInput]. A missing file is [errors.ErrCodeFileNotFound]
// and an unknown extension is [errors.ErrCodeInvalidFormat].
//
// [errors.ErrCodeInvalidInput]: github.com/matzehuels/figtex/pkg/errors.ErrCodeInvalidInput
// [errors.ErrCodeFileNotFound]: github.com/matzehuels/figtex/pkg/errors.ErrCodeFileNotFound
// [errors.ErrCodeInvalidFormat]: github.com/matzehuels/figtex/pkg/errors.ErrCodeInvalidFormat
package io
