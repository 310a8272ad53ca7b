package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"

	"git.lost.host/meutraa/rain/internal/audio"
	"git.lost.host/meutraa/rain/internal/config"
	"git.lost.host/meutraa/rain/internal/parser"
	"git.lost.host/meutraa/rain/internal/render"
	"git.lost.host/meutraa/rain/internal/score"
	"git.lost.host/meutraa/rain/internal/theme"
)

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func run() error {
	// Ensure our Default implementations are used as interfaces
	var psr parser.Parser = &parser.DefaultParser{}
	var scr score.Scorer = &score.DefaultScorer{}
	var th theme.Theme = &theme.DefaultTheme{}
	var r render.Renderer = &render.DefaultRenderer{}

	var mp3File, ogg, chartFile string
	if err := filepath.Walk(*config.Directory, func(p string, info os.FileInfo, err error) error {
		switch path.Ext(info.Name()) {
		case ".mp3":
			mp3File = p
		case ".ogg":
			ogg = p
		case ".csv":
			chartFile = p
		}
		return nil
	}); nil != err {
		return fmt.Errorf("unable to walk song directory: %w", err)
	}

	if chartFile == "" {
		return errors.New("unable to find a .csv chart in given directory")
	}
	audioFile := mp3File
	if ogg != "" {
		audioFile = ogg
	}

	chart, err := psr.Parse(chartFile)
	if nil != err {
		return err
	}
	if len(chart.Notes) == 0 {
		return errors.New("chart contains no playable events")
	}

	if err := scr.Init(); nil != err {
		return err
	}
	defer scr.Deinit()

	for _, h := range scr.Load(chart) {
		fmt.Printf("previous  score %8.1f  combo %5v\n", h.Score, h.Combo)
	}

	p := &Program{
		Scorer:   scr,
		Theme:    th,
		Renderer: r,
		Sampler:  audio.NewSampler(),

		chart:     chart,
		audioFile: audioFile,
	}
	return p.Run()
}
