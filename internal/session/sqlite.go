package session

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// SqliteStorage — персистентное хранилище сессии в sqlite-файле

type SqliteStorage struct {
	database *sql.DB
}

func NewSqliteStorage(path string) (*SqliteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	// Таблица сессии: ключ-значение
	_, err = db.Exec(
		"CREATE TABLE IF NOT EXISTS session (" +
			" key TEXT PRIMARY KEY," +
			" value TEXT NOT NULL" +
			" );")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return &SqliteStorage{database: db}, nil
}

func (s *SqliteStorage) Get(key string) (string, bool) {
	row := s.database.QueryRow(
		"SELECT value FROM session"+
			" WHERE key = ?",
		key)
	var value string
	if err := row.Scan(&value); err != nil {
		return "", false
	}
	return value, true
}

func (s *SqliteStorage) Set(key string, value string) error {
	_, err := s.database.Exec(
		"INSERT INTO session (key, value)"+
			" VALUES (?, ?)"+
			" ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key,
		value)
	return err
}

func (s *SqliteStorage) Delete(key string) error {
	_, err := s.database.Exec(
		"DELETE FROM session WHERE key = ?",
		key)
	return err
}

func (s *SqliteStorage) Clear() error {
	_, err := s.database.Exec("DELETE FROM session")
	return err
}

func (s *SqliteStorage) Close() error {
	return s.database.Close()
}
