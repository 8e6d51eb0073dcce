/*
 *     Copyright 2025 The CNAI Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package pb

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"

	humanize "github.com/dustin/go-humanize"
	mpbv8 "github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

var disableProgress atomic.Bool

// SetDisableProgress disables the rendering of every progress bar created afterwards.
func SetDisableProgress(disable bool) {
	disableProgress.Store(disable)
}

// NormalizePrompt normalizes the prompt string.
func NormalizePrompt(prompt string) string {
	return fmt.Sprintf("%s =>", prompt)
}

// ProgressBar is a progress bar. The zero bar of a disabled ProgressBar
// passes readers through untouched.
type ProgressBar struct {
	mu   sync.RWMutex
	mpb  *mpbv8.Progress
	bars map[string]*progressBar
}

type progressBar struct {
	*mpbv8.Bar
	size int64
	msg  string
}

// NewProgressBar creates a new progress bar rendering to stderr, so it does
// not interleave with the verbose entry listing on stdout.
func NewProgressBar() *ProgressBar {
	p := &ProgressBar{
		bars: make(map[string]*progressBar),
	}

	if !disableProgress.Load() {
		p.mpb = mpbv8.New(mpbv8.WithWidth(60), mpbv8.WithOutput(os.Stderr))
	}

	return p
}

// Add adds a new progress bar tracking the bytes read from reader.
func (p *ProgressBar) Add(prompt, name string, size int64, reader io.Reader) io.Reader {
	if p.mpb == nil {
		return reader
	}

	return p.bar(prompt, name, size).ProxyReader(reader)
}

// Track adds a new progress bar of size, the bytes are fed through Proxy.
func (p *ProgressBar) Track(prompt, name string, size int64) {
	if p.mpb == nil {
		return
	}

	p.bar(prompt, name, size)
}

func (p *ProgressBar) bar(prompt, name string, size int64) *progressBar {
	p.mu.RLock()
	oldBar := p.bars[name]
	p.mu.RUnlock()

	if oldBar != nil {
		return oldBar
	}

	// Create a new bar if it does not exist.
	bar := p.mpb.New(size,
		mpbv8.BarStyle(),
		mpbv8.BarFillerOnComplete("|"),
		mpbv8.PrependDecorators(
			decor.Any(func(s decor.Statistics) string {
				p.mu.RLock()
				defer p.mu.RUnlock()

				bar, ok := p.bars[name]
				if ok && bar.msg != "" {
					return bar.msg
				}

				return fmt.Sprintf("%s %s", prompt, name)
			}, decor.WCSyncSpaceR),
		),
		mpbv8.AppendDecorators(
			decor.OnComplete(decor.Counters(decor.SizeB1024(0), "% .2f / % .2f"), humanize.Bytes(uint64(size))),
			decor.OnComplete(decor.Name(" | ", decor.WCSyncWidthR), " | "),
			decor.OnComplete(
				decor.AverageSpeed(decor.SizeB1024(0), "% .2f", decor.WCSyncWidthR), "done",
			),
		),
	)

	pbar := &progressBar{Bar: bar, size: size}
	p.mu.Lock()
	p.bars[name] = pbar
	p.mu.Unlock()

	return pbar
}

// Proxy wraps reader into the existing bar of name, the reader is returned
// as is if there is no such bar.
func (p *ProgressBar) Proxy(name string, reader io.Reader) io.Reader {
	p.mu.RLock()
	bar := p.bars[name]
	p.mu.RUnlock()

	if bar == nil {
		return reader
	}

	return bar.ProxyReader(reader)
}

// Complete completes the progress bar.
func (p *ProgressBar) Complete(name string, msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	bar, ok := p.bars[name]
	if ok {
		bar.msg = msg
		bar.Bar.SetCurrent(bar.size)
	}
}

// Abort stops the bar of name without completing it.
func (p *ProgressBar) Abort(name string) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if bar, ok := p.bars[name]; ok {
		bar.Bar.Abort(false)
	}
}

// Stop waits for the progress bar to finish.
func (p *ProgressBar) Stop() {
	if p.mpb != nil {
		p.mpb.Shutdown()
	}
}
