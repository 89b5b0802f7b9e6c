// This file is part of Videochain.
//
// Videochain is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Videochain is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Videochain.  If not, see <https://www.gnu.org/licenses/>.

package video

import (
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/videochain/videochain/curated"
	"github.com/videochain/videochain/logger"
)

// watcher notices changes to the files used by a shader preset.
type watcher struct {
	w     *fsnotify.Watcher
	files map[string]bool
	flag  atomic.Bool
	done  sync.WaitGroup
}

// newWatcher watches the directories of the named files. Changes to other
// files in those directories are ignored.
func newWatcher(files []string) (*watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, curated.Errorf("watcher: %v", err)
	}

	wt := &watcher{
		w:     fw,
		files: make(map[string]bool),
	}

	dirs := make(map[string]bool)
	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			continue
		}
		wt.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}

	for d := range dirs {
		err = fw.Add(d)
		if err != nil {
			_ = fw.Close()
			return nil, curated.Errorf("watcher: %v", err)
		}
	}

	wt.done.Add(1)
	go wt.service()

	return wt, nil
}

func (wt *watcher) service() {
	defer wt.done.Done()
	for {
		select {
		case ev, ok := <-wt.w.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !wt.files[abs] {
				continue
			}
			logger.Logf(logger.Allow, "video", "%s changed", ev.Name)
			wt.flag.Store(true)
		case err, ok := <-wt.w.Errors:
			if !ok {
				return
			}
			logger.Logf(logger.Allow, "video", "watcher: %v", err)
		}
	}
}

// changed returns true if any of the watched files have changed since the
// previous call.
func (wt *watcher) changed() bool {
	return wt.flag.Swap(false)
}

func (wt *watcher) close() {
	_ = wt.w.Close()
	wt.done.Wait()
}
