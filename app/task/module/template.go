// Copyright (c) tkc17.

package module

import (
	"context"
	_ "embed"
	"io/fs"
	"os"

	"github.com/nikolalohinski/gonja"
)

//go:embed templates/iwmon.service.j2
var serviceUnitTemplate string

// ResolveTemplate renders the template source with the given values.
func ResolveTemplate(
	ctx context.Context,
	values map[string]any,
	source string,
) (string, error) {
	tpl, err := gonja.FromString(source)
	if err != nil {
		return "", err
	}
	return tpl.Execute(values)
}

// WriteFromTemplate renders the template source and writes the output to the
// destination file.
func WriteFromTemplate(
	ctx context.Context,
	values map[string]any,
	source, destination string,
	mod fs.FileMode,
) error {
	output, err := ResolveTemplate(ctx, values, source)
	if err != nil {
		return err
	}
	err = os.WriteFile(destination, []byte(output), mod)
	if err != nil {
		return err
	}
	return nil
}

// ServiceUnit renders the embedded systemd unit template for the agent.
// The values must carry binary_path and iface.
func ServiceUnit(ctx context.Context, values map[string]any) (string, error) {
	return ResolveTemplate(ctx, values, serviceUnitTemplate)
}
