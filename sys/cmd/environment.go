package cmd

import (
	"fmt"
	"os/exec"
)

// ValidateEnvironment checks that every external tool
// the downloads rely on is reachable
func ValidateEnvironment(commands ...string) error {
	if len(commands) == 0 {
		commands = []string{"ffmpeg", "yt-dlp"}
	}

	for _, cmd := range commands {
		if _, err := exec.LookPath(cmd); err != nil {
			return fmt.Errorf("command %q not found in PATH", cmd)
		}
	}
	return nil
}
