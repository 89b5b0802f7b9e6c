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

package main

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/videochain/videochain/chain"
	"github.com/videochain/videochain/glsl"
	"github.com/videochain/videochain/headless"
	"github.com/videochain/videochain/input"
	"github.com/videochain/videochain/logger"
	"github.com/videochain/videochain/modalflag"
	"github.com/videochain/videochain/paths"
	"github.com/videochain/videochain/performance"
	"github.com/videochain/videochain/performance/limiter"
	"github.com/videochain/videochain/prefs"
	"github.com/videochain/videochain/sdlwindow"
	"github.com/videochain/videochain/statsview"
	"github.com/videochain/videochain/version"
	"github.com/videochain/videochain/video"
)

// size of the frames produced by the test card
const (
	frameWidth  = 256
	frameHeight = 224
)

// the rate the benchmark is measured against
const targetFPS = 60.0

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.AddSubModes("RUN", "HEADLESS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "HEADLESS":
		err = runHeadless(md, os.Stdout)
	case "VERSION":
		err = showVersion(md, os.Stdout)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md, err)
		os.Exit(20)
	}
}

// options common to all modes.
type options struct {
	prefsFile *string
	set       *string
	shader    *string
	format    *string
	rotate    *int
	log       *bool
	stats     *bool
}

func addOptions(md *modalflag.Modes) *options {
	opts := &options{
		prefsFile: md.AddString("prefs", "", "preferences file (default is the preferences file in the resource directory)"),
		set:       md.AddString("set", "", "override preferences. eg. \"video.smooth::true; video.inputScale::4\""),
		shader:    md.AddString("shader", "", "shader or shader preset (overrides the video.shader preference)"),
		format:    md.AddString("format", "ARGB", "pixel format of frames: ARGB, RGB15"),
		rotate:    md.AddInt("rotate", 0, "rotation in quarter turns anti-clockwise"),
		log:       md.AddBool("log", false, "echo log to stdout"),
	}
	if statsview.Available() {
		opts.stats = md.AddBool("statsview", false, fmt.Sprintf("run stats server (%s)", statsview.Address))
	}
	return opts
}

func parseFormat(s string) (chain.PixelFormat, error) {
	switch strings.ToUpper(s) {
	case "ARGB":
		return chain.ARGB, nil
	case "RGB15":
		return chain.RGB15, nil
	}
	return chain.ARGB, fmt.Errorf("unknown pixel format: %s", s)
}

// prepare applies the common options and returns the driver configuration.
func (opts *options) prepare(md *modalflag.Modes) (video.Config, *video.Preferences, error) {
	if *opts.log {
		logger.SetEcho(os.Stdout, false)
	}
	if opts.stats != nil && *opts.stats {
		statsview.Launch(os.Stdout)
	}

	if *opts.set != "" {
		prefs.PushCommandLineStack(*opts.set)
	}

	prf, err := video.NewPreferences(*opts.prefsFile)
	if err != nil {
		return video.Config{}, nil, err
	}

	if *opts.set != "" {
		if unused := prefs.PopCommandLineStack(); unused != "" {
			logger.Logf(logger.Allow, "prefs", "unused preferences: %s", unused)
		}
	}

	format, err := parseFormat(*opts.format)
	if err != nil {
		return video.Config{}, nil, err
	}

	cfg := prf.Config(version.Title(), format)

	// a shader given as an argument takes priority over the flag
	if *opts.shader != "" {
		cfg.Shader = *opts.shader
	}
	if arg := md.GetArg(0); arg != "" {
		cfg.Shader = arg
	}

	return cfg, prf, nil
}

func run(md *modalflag.Modes) error {
	md.NewMode()
	opts := addOptions(md)
	save := md.AddBool("save", false, "save preferences on exit")
	fpsCap := md.AddInt("fpscap", 0, "limit frame rate when vsync is off (0 for no limit)")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	cfg, prf, err := opts.prepare(md)
	if err != nil {
		return err
	}

	win, err := sdlwindow.New(cfg.Title, cfg.Width, cfg.Height, cfg.Fullscreen)
	if err != nil {
		return err
	}
	defer win.Destroy()

	drv, err := video.New(cfg, win, glsl.NewBackend())
	if err != nil {
		return err
	}
	defer drv.Close()
	drv.SetRotation(*opts.rotate)

	poller, err := input.NewSDLPoller()
	if err != nil {
		return err
	}
	in, err := input.New(poller, input.DefaultJoypads(), prf.AxisThreshold.Get().(float64))
	if err != nil {
		poller.Close()
		return err
	}
	defer in.Close()

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	card := newTestCard(frameWidth, frameHeight, cfg.Format)
	ctrl := newControls(*opts.rotate)

	var lim *limiter.Limiter
	if !cfg.VSync && *fpsCap > 0 {
		lim = limiter.NewLimiter(*fpsCap)
		defer lim.Stop()
	}

	for drv.Alive() {
		select {
		case <-intChan:
			return nil
		default:
		}

		in.Poll()
		if !ctrl.service(drv, in) {
			break // for loop
		}

		if drv.Frame(card.next(), card.width, card.height, card.pitch, ctrl.message()) == video.Failed {
			return fmt.Errorf("video device lost")
		}

		if lim != nil && !ctrl.fastForward {
			lim.Wait()
		}
	}

	if *save {
		return prf.Save()
	}

	return nil
}

func runHeadless(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	opts := addOptions(md)
	frames := md.AddInt("frames", 600, "number of frames to render")
	width := md.AddInt("width", 640, "width of the back buffer")
	height := md.AddInt("height", 480, "height of the back buffer")
	profile := md.AddString("profile", "none", "run performance profiler (cpu, mem, trace, all). comma separated")
	shot := md.AddBool("screenshot", false, "save a screenshot of the final frame")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	cfg, _, err := opts.prepare(md)
	if err != nil {
		return err
	}
	cfg.Width = *width
	cfg.Height = *height

	prof, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	var drv *video.Driver
	err = performance.RunProfiler(prof, "videochain", func() error {
		var err error
		drv, err = benchmark(cfg, *opts.rotate, *frames, output)
		return err
	})
	if err != nil {
		return err
	}
	defer drv.Close()

	if *shot {
		pth, err := screenshot(drv)
		if err != nil {
			return err
		}
		fmt.Fprintf(output, "screenshot saved to %s\n", pth)
	}

	return nil
}

func showVersion(md *modalflag.Modes, output io.Writer) error {
	md.NewMode()
	revision := md.AddBool("v", false, "display revision information")

	p, err := md.Parse()
	if p != modalflag.ParseContinue {
		return err
	}

	v, r, _ := version.Version()
	fmt.Fprintf(output, "%s %s\n", version.ApplicationName, v)
	if *revision {
		fmt.Fprintln(output, r)
	}

	return nil
}

// benchmark renders the number of frames with the headless device and prints
// the frame rate to output. The driver is returned open so that the final
// frame can be inspected.
func benchmark(cfg video.Config, rotation int, frames int, output io.Writer) (*video.Driver, error) {
	win := headless.NewWindow(cfg.Width, cfg.Height)
	drv, err := video.New(cfg, win, headless.NewBackend())
	if err != nil {
		return nil, err
	}
	drv.SetRotation(rotation)

	card := newTestCard(frameWidth, frameHeight, cfg.Format)

	var dropped int
	start := time.Now()
	for range frames {
		switch drv.Frame(card.next(), card.width, card.height, card.pitch, "") {
		case video.Dropped:
			dropped++
		case video.Failed:
			drv.Close()
			return nil, fmt.Errorf("video device lost")
		}
	}
	secs := time.Since(start).Seconds()

	fmt.Fprintf(output, "%d passes, viewport %s\n", len(drv.Chain().Passes()), drv.Viewport())
	if secs > 0 {
		fps, accuracy := performance.CalcFPS(frames, secs, targetFPS)
		fmt.Fprintf(output, "%d frames in %.2fs (%.1f fps, %.1f%% of %.0f), %d dropped\n", frames, secs, fps, accuracy, targetFPS, dropped)
	} else {
		fmt.Fprintf(output, "%d frames, %d dropped\n", frames, dropped)
	}

	return drv, nil
}

// screenshot saves the viewport as a PNG file in the resource directory and
// returns the path of the file.
func screenshot(drv *video.Driver) (string, error) {
	img, err := drv.Screenshot()
	if err != nil {
		return "", err
	}

	pth, err := paths.ResourcePath("screenshots", paths.UniqueFilename("screenshot", "")+".png")
	if err != nil {
		return "", err
	}

	f, err := os.Create(pth)
	if err != nil {
		return "", err
	}
	defer f.Close()

	err = png.Encode(f, img)
	if err != nil {
		return "", err
	}

	logger.Logf(logger.Allow, "videochain", "screenshot saved to %s", pth)

	return pth, nil
}
