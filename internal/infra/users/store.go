package users

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 100 * time.Millisecond

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// FileStore учётные записи из JSON файла {"username": "password"}
// Без Watch файл перечитывается при каждой проверке
type FileStore struct {
	path string
	log  Logger

	mu       sync.RWMutex
	users    map[string]string
	loadErr  error
	watching bool
}

// NewFileStore создает хранилище и сразу читает файл
// Ошибка чтения не фатальна: она возвращается из Authenticate до исправления файла
func NewFileStore(path string, log Logger) *FileStore {
	s := &FileStore{path: filepath.Clean(path), log: log}
	if err := s.Reload(); err != nil {
		log.Warn("Users file %s not loaded: %v", s.path, err)
	}
	return s
}

// Reload перечитывает файл пользователей
func (s *FileStore) Reload() error {
	users, err := readUsers(s.path)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadErr = err
	if err == nil {
		s.users = users
	} else {
		s.users = nil
	}
	return err
}

func readUsers(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotInitialized
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrNotInitialized, path, err)
	}

	users := make(map[string]string)
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	return users, nil
}

// Authenticate проверяет пароль за постоянное время
func (s *FileStore) Authenticate(username, password string) error {
	s.mu.RLock()
	watching := s.watching
	s.mu.RUnlock()

	if !watching {
		_ = s.Reload()
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.loadErr != nil {
		return s.loadErr
	}

	expected, ok := s.users[username]
	// сравнение выполняется и для неизвестного логина
	match := subtle.ConstantTimeCompare([]byte(expected), []byte(password)) == 1
	if !ok || !match {
		return ErrInvalidCredentials
	}
	return nil
}

// Count возвращает число загруженных пользователей
func (s *FileStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Watch следит за каталогом файла и перечитывает его после изменений
// Блокируется до отмены контекста
func (s *FileStore) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Каталог, а не файл: редакторы заменяют файл через rename
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.path), err)
	}

	s.mu.Lock()
	s.watching = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.watching = false
		s.mu.Unlock()
	}()

	// файл мог измениться между NewFileStore и запуском наблюдателя
	_ = s.Reload()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounceDelay)
			} else {
				timer.Reset(debounceDelay)
			}
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Error("Users file watcher error: %v", err)

		case <-fire:
			fire = nil
			if err := s.Reload(); err != nil {
				s.log.Warn("Users file %s reload failed: %v", s.path, err)
				continue
			}
			s.log.Info("Users file %s reloaded, %d users", s.path, s.Count())
		}
	}
}
