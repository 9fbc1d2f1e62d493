// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestManager_Classify(t *testing.T) {
	tests := []struct {
		name    string
		setup   func(t *testing.T, path string)
		content string
		want    FileStatus
	}{
		{
			name:    "missing_file",
			content: "hello",
			want:    StatusNew,
		},
		{
			name: "same_content",
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))
			},
			content: "hello",
			want:    StatusUnchanged,
		},
		{
			name: "different_content",
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("goodbye"), 0644))
			},
			content: "hello",
			want:    StatusModified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.txt")
			if tt.setup != nil {
				tt.setup(t, path)
			}

			got, err := New(nil).Classify(context.Background(), path, []byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestManager_WriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "out.txt")
	mgr := New(nil)

	require.NoError(t, mgr.WriteFileAtomic(context.Background(), path, []byte("first"), 0644))
	require.NoError(t, mgr.WriteFileAtomic(context.Background(), path, []byte("second"), 0600))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files should not be left behind")
}

func TestManager_Tracking(t *testing.T) {
	ctx := context.Background()
	mgr := New(nil)

	mgr.StartOperation(ctx, 3)

	var wg sync.WaitGroup
	infos := []FileInfo{
		{Source: "c.txt", Destination: "c.txt.replaced", Status: StatusNew, Replacements: 1},
		{Source: "a.txt", Destination: "a.txt.replaced", Status: StatusUnchanged},
		{Source: "b.txt", Destination: "b.txt.replaced", Status: StatusFailed, Error: errors.New("boom")},
	}
	for _, info := range infos {
		wg.Add(1)
		go func(info FileInfo) {
			defer wg.Done()
			mgr.TrackFile(ctx, info)
			mgr.Advance(ctx)
		}(info)
	}
	wg.Wait()
	mgr.FinishOperation(ctx)

	processed, total := mgr.Progress()
	assert.Equal(t, 3, processed)
	assert.Equal(t, 3, total)

	files := mgr.ListFiles(ctx)
	require.Len(t, files, 3)
	assert.Equal(t, "a.txt.replaced", files[0].Destination)
	assert.Equal(t, "b.txt.replaced", files[1].Destination)
	assert.Equal(t, "c.txt.replaced", files[2].Destination)

	counts := mgr.Counts(ctx)
	assert.Equal(t, 1, counts[StatusNew])
	assert.Equal(t, 1, counts[StatusUnchanged])
	assert.Equal(t, 1, counts[StatusFailed])

	got, err := mgr.GetFileInfo(ctx, "c.txt.replaced")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Replacements)

	_, err = mgr.GetFileInfo(ctx, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not tracked")
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Checksum(nil))
	assert.NotEqual(t, Checksum([]byte("a")), Checksum([]byte("b")))
}

func TestDefaultFileFormatter(t *testing.T) {
	f := NewDefaultFileFormatter()

	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			name: "new",
			got:  f.FormatFileOperation(FileInfo{Destination: "out.txt", Status: StatusNew, Replacements: 2}),
			want: "✨ Created out.txt (2 replacements)",
		},
		{
			name: "modified",
			got:  f.FormatFileOperation(FileInfo{Destination: "out.txt", Status: StatusModified, Replacements: 1}),
			want: "📝 Modified out.txt (1 replacements)",
		},
		{
			name: "unchanged",
			got:  f.FormatFileOperation(FileInfo{Destination: "out.txt", Status: StatusUnchanged}),
			want: "👍 Unchanged out.txt",
		},
		{
			name: "preview",
			got:  f.FormatFileOperation(FileInfo{Source: "in.txt", Status: StatusPreview, Replacements: 4}),
			want: "👀 Previewed in.txt (4 replacements)",
		},
		{
			name: "progress_partial",
			got:  f.FormatProgress(1, 4),
			want: "⏳ Progress: 1/4 (25%)",
		},
		{
			name: "progress_done",
			got:  f.FormatProgress(4, 4),
			want: "✅ Progress: 4/4 (100%)",
		},
		{
			name: "progress_empty",
			got:  f.FormatProgress(0, 0),
			want: "✅ Progress: 0/0 (0%)",
		},
		{
			name: "error",
			got:  f.FormatError(errors.New("boom")),
			want: "❌ Error: boom",
		},
		{
			name: "nil_error",
			got:  f.FormatError(nil),
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestFileStatus_String(t *testing.T) {
	assert.Equal(t, "new", StatusNew.String())
	assert.Equal(t, "modified", StatusModified.String())
	assert.Equal(t, "unchanged", StatusUnchanged.String())
	assert.Equal(t, "preview", StatusPreview.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", FileStatus(99).String())
}
