package gtfs

import (
	"archive/zip"
	"hash/crc32"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var feedFiles = map[string]string{
	"agency.txt": "agency_id,agency_name,agency_url,agency_timezone\r\n" +
		"1,Example Busses,https://example.com,Etc/UTC\r\n" +
		"2,Example Trams,https://example.com,Etc/UTC\r\n",
	"calendar.txt": "service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date\r\n" +
		"D,1,1,1,1,1,0,0,20210101,20211231\r\n" +
		"W,0,0,0,0,0,1,1,20210101,20211231\r\n",
	"routes.txt": "agency_id,route_id,route_short_name,route_long_name,route_type,route_color,route_text_color\r\n" +
		"1,A,A,Park - Airport,3,BB0000,FFFFFF\r\n" +
		"1,B,B,Park - Harbour,3,00BB00,FFFFFF\r\n" +
		"2,1,1,Central - North,0,0000BB,FFFFFF\r\n" +
		"2,2,2,Central - South,0,BBBB00,000000\r\n",
	"readme.md": "not a gtfs table\n",
}

// writeFeedDir writes files into a fresh directory and returns its path.
func writeFeedDir(t *testing.T, files map[string]string) string {
	t.Helper()

	dir := t.TempDir()
	for name, contents := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
	}
	return dir
}

// writeFeedZip writes files into a fresh zip archive and returns its path.
func writeFeedZip(t *testing.T, files map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gtfs.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	zw := zip.NewWriter(f)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

// statusRecorder is a Sender keeping every update it receives.
type statusRecorder struct {
	mu       sync.Mutex
	channels []string
	statuses []Status
}

func (r *statusRecorder) send(channel string, status Status) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.channels = append(r.channels, channel)
	r.statuses = append(r.statuses, status)
}

func (r *statusRecorder) all() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Status(nil), r.statuses...)
}

// writeUnreadableZip writes an archive whose stops.txt member uses an unsupported compression method,
// so the archive opens but the member can not be read.
func writeUnreadableZip(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gtfs.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	data := []byte("stop_id\n1\n")
	zw := zip.NewWriter(f)
	w, err := zw.CreateRaw(&zip.FileHeader{
		Name:               "stops.txt",
		Method:             99,
		CRC32:              crc32.ChecksumIEEE(data),
		CompressedSize64:   uint64(len(data)),
		UncompressedSize64: uint64(len(data)),
	})
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}
