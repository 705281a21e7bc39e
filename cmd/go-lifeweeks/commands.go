package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tartampluch/go-lifeweeks/internal/config"
	"github.com/tartampluch/go-lifeweeks/internal/engine"
	"github.com/tartampluch/go-lifeweeks/internal/lifeconfig"
	"github.com/tartampluch/go-lifeweeks/internal/sharing"
	"github.com/tartampluch/go-lifeweeks/internal/storage"
)

// readConfigFile imports a .json or .yaml configuration file.
func readConfigFile(path string) (lifeconfig.LifeConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return lifeconfig.LifeConfig{}, fmt.Errorf("%s: %w", config.ErrReadFile, err)
	}
	defer func() { _ = f.Close() }()

	return storage.Import(f, filepath.Base(path))
}

// printShareLink writes the share link of the configuration stored at path.
func printShareLink(w io.Writer, path string) error {
	cfg, err := readConfigFile(path)
	if err != nil {
		return err
	}
	token, err := sharing.EncodeConfig(cfg)
	if err != nil {
		return err
	}
	link, err := sharing.ShareURL(config.ShareBaseURL, token)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, link)
	return err
}

// printDecoded writes the stored JSON envelope of a share link or token.
func printDecoded(w io.Writer, raw string) error {
	token, ok := sharing.TokenFromURL(raw)
	if !ok {
		return errors.New(config.MsgLinkInvalid)
	}
	cfg, ok := sharing.DecodeConfig(token)
	if !ok {
		return errors.New(config.MsgLinkInvalid)
	}
	data, err := storage.Marshal(cfg, storage.FormatJSON)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// printFeed writes the iCalendar feed of the configuration stored at path.
func printFeed(ctx context.Context, w io.Writer, path string) error {
	cfg, err := readConfigFile(path)
	if err != nil {
		return err
	}
	ics, _, err := engine.NewGenerator().Generate(ctx, cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(ics)
	return err
}
