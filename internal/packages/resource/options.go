package resource

import (
	"io/fs"

	"github.com/go-logr/logr"
)

type WithLog struct{ Log logr.Logger }

func (w WithLog) ConfigureLoader(c *LoaderConfig) {
	c.Log = w.Log
}

type WithBundled struct{ FS fs.FS }

func (w WithBundled) ConfigureLoader(c *LoaderConfig) {
	c.Bundled = w.FS
}

type WithS3Client struct{ Client ObjectGetter }

func (w WithS3Client) ConfigureLoader(c *LoaderConfig) {
	c.S3 = w.Client
}

type WithS3Config S3Config

func (w WithS3Config) ConfigureLoader(c *LoaderConfig) {
	c.S3Config = S3Config(w)
}
