package storagepath

import (
	"fmt"
	"strings"
)

type Generator struct {
	Host   string
	Bucket string
}

// GeneratePath places a song's output file under the job's destination prefix
func (g Generator) GeneratePath(destinationPrefix string, slug string, fileName string) string {
	prefix := strings.Trim(destinationPrefix, "/")
	if prefix == "" {
		return fmt.Sprintf("%s/%s/%s/%s", g.Host, g.Bucket, slug, fileName)
	}

	return fmt.Sprintf("%s/%s/%s/%s/%s", g.Host, g.Bucket, prefix, slug, fileName)
}
