package main

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// openURL opens the URL in the default browser.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	fmt.Printf("✓ Opened %s\n", url)
	return nil
}

// copyToClipboard tries the usual clipboard tools in order.
func copyToClipboard(text string) error {
	commands := [][]string{
		{"wl-copy"},
		{"xclip", "-selection", "clipboard"},
		{"pbcopy"},
		{"clip"},
	}

	for _, args := range commands {
		cmd := exec.Command(args[0], args[1:]...)
		cmd.Stdin = strings.NewReader(text)
		if err := cmd.Run(); err == nil {
			fmt.Printf("✓ Copied to clipboard: %s\n", text)
			return nil
		}
	}

	return fmt.Errorf("could not copy to clipboard: no suitable command found")
}
