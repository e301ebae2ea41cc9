// Spritepack packs sprite images into a bbolt resource file that
// spritekit.OpenResourceFile can serve as a Decoder.
//
// With -manifest, only the sprites the manifest names are packed and the
// manifest is then applied against the packed file to check that every sheet
// and animation loads. With -dump, every frame of every packed sprite is also
// rendered to PNG for inspection.
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phanxgames/spritekit"
)

var (
	rootPath     string
	manifestPath string
	outPath      string
	dumpPath     string
	verbose      bool
)

func parseFlags() {
	flag.StringVar(&rootPath, "root", "./sprites",
		"Directory the sprite paths are relative to.")
	flag.StringVar(&manifestPath, "manifest", "",
		"Optional YAML manifest; only its sprites are packed.")
	flag.StringVar(&outPath, "out", "./sprites.res",
		"Resource file to write.")
	flag.StringVar(&dumpPath, "dump", "",
		"Optional directory to write every rendered frame to.")
	flag.BoolVar(&verbose, "v", false, "Log debug messages.")

	flag.Parse()
}

func main() {
	parseFlags()
	log.SetFlags(0)

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var manifest *spritekit.Manifest
	var files []string
	if manifestPath != "" {
		m, err := spritekit.ReadManifest(manifestPath)
		if err != nil {
			return err
		}
		manifest = m
		for _, sp := range m.Sprites {
			files = append(files, sp.Path)
		}
	} else {
		var err error
		if files, err = imageFiles(rootPath); err != nil {
			return err
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no images found under %s", rootPath)
	}

	if err := spritekit.PackResources(outPath, rootPath, files); err != nil {
		return err
	}
	log.Printf("packed %d images into %s", len(files), outPath)

	if manifest == nil && dumpPath == "" {
		return nil
	}

	res, err := spritekit.OpenResourceFile(outPath)
	if err != nil {
		return err
	}
	defer res.Close()

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	cfg := spritekit.Config{
		Decoder: res,
		Sink:    &spritekit.SlogSink{Logger: slog.New(handler)},
	}
	r := spritekit.NewRenderer(cfg)

	if manifest != nil {
		ids, err := manifest.Apply(r, spritekit.NewScheduler(cfg), "")
		if err != nil {
			return err
		}
		log.Printf("manifest ok: %d sprites, %d animations", r.CacheSize(), len(ids))
	} else {
		for _, f := range files {
			if err := r.LoadSprite(filepath.ToSlash(f), f); err != nil {
				return err
			}
		}
	}

	if dumpPath == "" {
		return nil
	}
	for _, name := range r.LoadedSprites() {
		paths, err := r.DumpFrames(name, dumpPath, spritekit.DefaultRenderOptions())
		if err != nil {
			return err
		}
		log.Printf("%s: %d frames", name, len(paths))
	}
	return nil
}

// imageFiles lists the image files under root, relative to it.
func imageFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !spritekit.IsImageFile(path) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relative path of %s: %w", path, err)
		}
		files = append(files, rel)
		return nil
	})
	return files, err
}
