package config

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/veedubyou/vocal-split/src/shared/config/envvar"
)

func FindBin(bin string) string {
	cmd := exec.Command("which", bin)
	output, err := cmd.CombinedOutput()

	stringOutput := string(output)
	if err != nil {
		panic(fmt.Sprintf("Failed to find %s: %s", bin, stringOutput))
	}

	trimmedOutput := strings.TrimSpace(stringOutput)
	if trimmedOutput == "" {
		panic(fmt.Sprintf("No bin found for %s", bin))
	}

	return trimmedOutput
}

func FFmpegPath() string {
	if path := envvar.GetOr(envvar.FFMPEG_BIN_PATH, ""); path != "" {
		return path
	}

	return FindBin("ffmpeg")
}

func FFprobePath() string {
	if path := envvar.GetOr(envvar.FFPROBE_BIN_PATH, ""); path != "" {
		return path
	}

	return FindBin("ffprobe")
}
