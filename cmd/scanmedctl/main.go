// Command scanmedctl is a development helper for a running ScanMed server:
// it mints and inspects access tokens and uploads scan images through
// presigned URLs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/scanmed/internal/netx"
	"github.com/dmitrijs2005/scanmed/internal/server/auth"
	"github.com/dmitrijs2005/scanmed/internal/server/config"
)

const usage = `usage:
  scanmedctl token  -user ID [-role admin] [-ttl 1h] [-s secret]
  scanmedctl whoami -token JWT [-s secret]
  scanmedctl upload -token JWT -file image.png [-server http://localhost:8080]`

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, http.DefaultClient); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(ctx context.Context, args []string, out io.Writer, client *http.Client) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	switch args[0] {
	case "token":
		return runToken(args[1:], out)
	case "whoami":
		return runWhoami(args[1:], out)
	case "upload":
		return runUpload(ctx, args[1:], out, client)
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func defaultSecret() string {
	if v, ok := os.LookupEnv(config.EnvPrefix + "SECRET_KEY"); ok {
		return v
	}
	c := &config.Config{}
	c.LoadDefaults()
	return c.SecretKey
}

func runToken(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("token", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	userID := fs.String("user", "", "user id placed in the userId claim")
	role := fs.String("role", "", "role claim, e.g. admin")
	ttl := fs.Duration("ttl", time.Hour, "token validity")
	secret := fs.String("s", defaultSecret(), "JWT signing secret")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *userID == "" {
		return errors.New("-user is required")
	}

	tok, err := auth.GenerateToken(*userID, *role, []byte(*secret), *ttl)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, tok)
	return err
}

func runWhoami(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("whoami", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	token := fs.String("token", "", "bearer access token")
	secret := fs.String("s", defaultSecret(), "JWT signing secret")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token == "" {
		return errors.New("-token is required")
	}

	userID, err := auth.GetUserIDFromToken(*token, []byte(*secret))
	if err != nil {
		return fmt.Errorf("token rejected: %w", err)
	}
	_, err = fmt.Fprintln(out, userID)
	return err
}

var contentTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

func runUpload(ctx context.Context, args []string, out io.Writer, client *http.Client) error {
	fs := flag.NewFlagSet("upload", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	server := fs.String("server", "http://localhost:8080", "ScanMed API base URL")
	token := fs.String("token", "", "bearer access token")
	file := fs.String("file", "", "image to upload")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *token == "" || *file == "" {
		return errors.New("-token and -file are required")
	}

	ct, ok := contentTypes[strings.ToLower(filepath.Ext(*file))]
	if !ok {
		return fmt.Errorf("unsupported image extension %q", filepath.Ext(*file))
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return err
	}

	key, url, err := netx.RequestImageUpload(ctx, client, *server, *token, ct)
	if err != nil {
		return err
	}
	if err := netx.UploadToPresignedURL(ctx, client, url, ct, data); err != nil {
		return err
	}

	// the key goes into the scan's imageUrl
	_, err = fmt.Fprintln(out, key)
	return err
}
