// Package autostart instala la entrada de arranque automático del agente en
// el escritorio del usuario (XDG autostart). La instalación es idempotente y
// best-effort: un escritorio sin soporte XDG simplemente la ignora.
package autostart

import (
	"fmt"
	"os"
	"path/filepath"
)

const desktopTemplate = `[Desktop Entry]
Type=Application
Name=%s
Exec=%s
X-GNOME-Autostart-enabled=true
NoDisplay=true
`

// Install escribe ~/.config/autostart/<app>.desktop apuntando al ejecutable
// actual. Si la entrada ya existe con el mismo contenido no la reescribe.
func Install(appName string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("autostart: ejecutable actual: %w", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("autostart: home del usuario: %w", err)
	}

	dir := filepath.Join(home, ".config", "autostart")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("autostart: crear %s: %w", dir, err)
	}

	path := filepath.Join(dir, appName+".desktop")
	content := fmt.Sprintf(desktopTemplate, appName, exe)

	if existing, err := os.ReadFile(path); err == nil && string(existing) == content {
		return nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("autostart: escribir %s: %w", path, err)
	}
	return nil
}
