// Package transport uploads exported result files to the FTP server of
// the race organizer.
package transport

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/MSSputnik/RVEZeitmessung/internal/conf"
	"github.com/MSSputnik/RVEZeitmessung/internal/errors"
	"github.com/MSSputnik/RVEZeitmessung/internal/logging"
)

const (
	defaultFTPPort      = 21
	defaultTimeout      = 30 * time.Second
	defaultMaxRetries   = 3
	defaultRetryBackoff = time.Second
)

// UploaderConfig holds configuration for the FTP uploader.
type UploaderConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Directory    string // remote directory to change into before uploading
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	Debug        bool
}

// Uploader sends local files to a single FTP target.
type Uploader struct {
	config UploaderConfig
	log    *slog.Logger
}

// NewUploader creates an uploader with the given configuration.
func NewUploader(config *UploaderConfig) (*Uploader, error) {
	if config.Host == "" {
		return nil, errors.Newf("ftp: host is required").
			Component("transport").
			Category(errors.CategoryConfiguration).
			Build()
	}
	if config.Port == 0 {
		config.Port = defaultFTPPort
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.MaxRetries == 0 {
		config.MaxRetries = defaultMaxRetries
	}
	if config.RetryBackoff == 0 {
		config.RetryBackoff = defaultRetryBackoff
	}

	return &Uploader{
		config: *config,
		log:    logging.ForService("transport"),
	}, nil
}

// FromSettings builds an uploader from the application settings.
func FromSettings(settings *conf.Settings) (*Uploader, error) {
	return NewUploader(&UploaderConfig{
		Host:      settings.FTP.Host,
		Port:      settings.FTP.Port,
		User:      settings.FTP.User,
		Password:  settings.FTP.Password,
		Directory: settings.FTP.Directory,
		Timeout:   time.Duration(settings.FTP.Timeout) * time.Second,
		Debug:     settings.Debug,
	})
}

// Upload sends each file to the configured target. All files go to the
// remote working directory under their base name.
func (u *Uploader) Upload(ctx context.Context, paths ...string) error {
	return u.withRetry(ctx, func(conn *ftp.ServerConn) error {
		for _, localPath := range paths {
			remoteName := filepath.Base(localPath)
			if err := u.atomicUpload(conn, localPath, remoteName); err != nil {
				return err
			}
			if u.log != nil {
				u.log.Info("uploaded file", "local", localPath, "remote", remoteName)
			}
		}
		return nil
	})
}

// isTransientError checks if an error is likely temporary.
func isTransientError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, hint := range []string{"timeout", "temporar", "connection reset", "broken pipe", "refused"} {
		if strings.Contains(msg, hint) {
			return true
		}
	}
	return false
}

// withRetry executes an operation with retry logic, reconnecting on
// every attempt.
func (u *Uploader) withRetry(ctx context.Context, op func(*ftp.ServerConn) error) error {
	var lastErr error
	for attempt := range u.config.MaxRetries {
		select {
		case <-ctx.Done():
			return errors.New(ctx.Err()).
				Component("transport").
				Category(errors.CategoryNetwork).
				Context("operation", "upload").
				Build()
		default:
		}

		conn, err := u.connect(ctx)
		if err != nil {
			lastErr = err
			if !isTransientError(err) {
				return err
			}
			time.Sleep(u.config.RetryBackoff * time.Duration(attempt+1))
			continue
		}

		err = op(conn)
		if quitErr := conn.Quit(); quitErr != nil && u.log != nil {
			u.log.Warn("failed to close FTP connection", "error", quitErr)
		}
		if err == nil {
			return nil
		}

		lastErr = err
		if !isTransientError(err) {
			return err
		}

		if u.config.Debug && u.log != nil {
			u.log.Info("retrying FTP operation",
				"error", err, "attempt", attempt+1, "max", u.config.MaxRetries)
		}
		time.Sleep(u.config.RetryBackoff * time.Duration(attempt+1))
	}

	return errors.New(lastErr).
		Component("transport").
		Category(errors.CategoryNetwork).
		Context("operation", "upload_retries_exhausted").
		Build()
}

// connect establishes a connection to the FTP server with context support.
func (u *Uploader) connect(ctx context.Context) (*ftp.ServerConn, error) {
	connChan := make(chan *ftp.ServerConn, 1)
	errChan := make(chan error, 1)

	go func() {
		addr := fmt.Sprintf("%s:%d", u.config.Host, u.config.Port)
		conn, err := ftp.Dial(addr, ftp.DialWithTimeout(u.config.Timeout))
		if err != nil {
			errChan <- fmt.Errorf("ftp: connection to %s failed: %w", addr, err)
			return
		}

		if u.config.User != "" {
			if err := conn.Login(u.config.User, u.config.Password); err != nil {
				if quitErr := conn.Quit(); quitErr != nil && u.log != nil {
					u.log.Warn("failed to quit FTP connection after login error", "error", quitErr)
				}
				errChan <- fmt.Errorf("ftp: login failed: %w", err)
				return
			}
		}

		if u.config.Directory != "" {
			if err := conn.ChangeDir(u.config.Directory); err != nil {
				if quitErr := conn.Quit(); quitErr != nil && u.log != nil {
					u.log.Warn("failed to quit FTP connection after cwd error", "error", quitErr)
				}
				errChan <- fmt.Errorf("ftp: changing to directory %s failed: %w", u.config.Directory, err)
				return
			}
		}

		connChan <- conn
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("ftp: connection attempt canceled: %w", ctx.Err())
	case err := <-errChan:
		return nil, err
	case conn := <-connChan:
		return conn, nil
	}
}

// atomicUpload stores the file under a temporary name first and renames
// it into place, so the result service never reads a half-written file.
func (u *Uploader) atomicUpload(conn *ftp.ServerConn, localPath, remotePath string) error {
	tempName := path.Join(path.Dir(remotePath),
		fmt.Sprintf("upload-%d-%d", time.Now().UnixNano(), os.Getpid()))

	if err := u.storeFile(conn, localPath, tempName); err != nil {
		_ = conn.Delete(tempName)
		return err
	}

	if err := conn.Rename(tempName, remotePath); err != nil {
		_ = conn.Delete(tempName)
		return fmt.Errorf("ftp: failed to rename temporary file: %w", err)
	}

	return nil
}

// storeFile handles the actual file upload.
func (u *Uploader) storeFile(conn *ftp.ServerConn, localPath, remotePath string) error {
	file, err := os.Open(localPath)
	if err != nil {
		return errors.New(err).
			Component("transport").
			Category(errors.CategoryFileIO).
			Context("path", localPath).
			Build()
	}
	defer func() {
		if err := file.Close(); err != nil && u.log != nil {
			u.log.Warn("failed to close local file", "path", localPath, "error", err)
		}
	}()

	if err := conn.Stor(remotePath, file); err != nil {
		if u.config.Debug && u.log != nil {
			u.log.Info("failed to store file", "remote", remotePath, "error", err)
		}
		return fmt.Errorf("ftp: failed to store %s: %w", remotePath, err)
	}

	return nil
}
