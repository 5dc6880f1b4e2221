package export

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/veedubyou/vocal-split/src/shared/audio/codec"
	"github.com/veedubyou/vocal-split/src/shared/lib/cerr"
	"github.com/veedubyou/vocal-split/src/shared/lib/errors/mark"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/partition"
	"github.com/veedubyou/vocal-split/src/shared/vocalsplit/spliterrors"
)

func NewExporter(codec codec.Codec) Exporter {
	return Exporter{codec: codec}
}

type Exporter struct {
	codec codec.Codec
}

type Participants struct {
	Player   string
	Opponent string
}

// ExportTracks writes the primary track for the player and the secondary for the opponent.
// Output paths are returned in that order.
func (e Exporter) ExportTracks(ctx context.Context, destDir string, ext string, participants Participants, tracks partition.Tracks) ([]string, error) {
	if err := EnsureDir(destDir); err != nil {
		return nil, err
	}

	if participants.Player == participants.Opponent {
		log.WithField("participant", participants.Player).
			Warn("Player and opponent share a name, the opponent track will overwrite the player track")
	}

	playerPath := filepath.Join(destDir, VoicesFileName(participants.Player, ext))
	if err := e.codec.Encode(ctx, tracks.Primary, playerPath); err != nil {
		return nil, cerr.Field("player", participants.Player).
			Wrap(err).Error("Failed to export the player track")
	}

	opponentPath := filepath.Join(destDir, VoicesFileName(participants.Opponent, ext))
	if err := e.codec.Encode(ctx, tracks.Secondary, opponentPath); err != nil {
		return []string{playerPath}, cerr.Field("opponent", participants.Opponent).
			Wrap(err).Error("Failed to export the opponent track")
	}

	return []string{playerPath, opponentPath}, nil
}

// CopyAs copies sourcePath byte for byte into destDir under fileName
func (e Exporter) CopyAs(sourcePath string, destDir string, fileName string) (string, error) {
	if err := EnsureDir(destDir); err != nil {
		return "", err
	}

	destPath := filepath.Join(destDir, fileName)
	if err := CopyFile(sourcePath, destPath); err != nil {
		return "", err
	}

	return destPath, nil
}

func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		err = mark.Wrap(err, spliterrors.FileOperationMark, "Failed to create destination folder")
		return cerr.Field("dir", dir).Wrap(err).Error("Cannot prepare output")
	}

	return nil
}

func CopyFile(sourcePath string, destPath string) error {
	errctx := cerr.Fields(cerr.F{
		"source_path": sourcePath,
		"dest_path":   destPath,
	})

	source, err := os.Open(sourcePath)
	if err != nil {
		return errctx.Wrap(mark.Wrap(err, spliterrors.FileOperationMark, "Failed to open source file")).
			Error("Failed to copy file")
	}

	defer source.Close()

	dest, err := os.Create(destPath)
	if err != nil {
		return errctx.Wrap(mark.Wrap(err, spliterrors.FileOperationMark, "Failed to create destination file")).
			Error("Failed to copy file")
	}

	if _, err := io.Copy(dest, source); err != nil {
		_ = dest.Close()
		return errctx.Wrap(mark.Wrap(err, spliterrors.FileOperationMark, "Failed to copy file contents")).
			Error("Failed to copy file")
	}

	if err := dest.Close(); err != nil {
		return errctx.Wrap(mark.Wrap(err, spliterrors.FileOperationMark, "Failed to flush destination file")).
			Error("Failed to copy file")
	}

	return nil
}
