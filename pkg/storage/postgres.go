package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/iWorld-y/trend_radar/pkg/config"
	"github.com/iWorld-y/trend_radar/pkg/model"
)

// Storage 榜单构建历史归档（可选能力，未配置数据库时整体跳过）
type Storage struct {
	db *sql.DB
}

// BuildSummary 一次历史构建的概要
type BuildSummary struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	ItemCount int       `json:"item_count"`
}

// NewStorage 连接数据库并初始化表结构
func NewStorage(cfg config.DBConfig) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &Storage{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

// Close 关闭数据库连接
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS ranking_builds (
			id SERIAL PRIMARY KEY,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS ranking_items (
			id SERIAL PRIMARY KEY,
			build_id INTEGER REFERENCES ranking_builds(id),
			time_window TEXT NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			url TEXT,
			description TEXT,
			stars TEXT,
			language TEXT,
			count INTEGER,
			chinese_desc TEXT,
			detailed_desc TEXT
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}

// SaveBuild 把一次构建的三个窗口榜单整体入库
func (s *Storage) SaveBuild(payload *model.RankingPayload) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, err
	}

	var buildID int
	if err := tx.QueryRow(`INSERT INTO ranking_builds DEFAULT VALUES RETURNING id`).Scan(&buildID); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			err = fmt.Errorf("%w: %v", err, rerr)
		}
		return 0, err
	}

	windows := []struct {
		name  string
		items []model.RankingItem
	}{
		{"week", payload.Week},
		{"month", payload.Month},
		{"quarter", payload.Quarter},
	}

	for _, w := range windows {
		for i, item := range w.items {
			_, err := tx.Exec(`INSERT INTO ranking_items
				(build_id, time_window, position, name, url, description, stars, language, count, chinese_desc, detailed_desc)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
				buildID, w.name, i+1, item.Name, item.URL, item.Description,
				item.Stars, item.Language, item.Count, item.ChineseDesc, item.DetailedDesc)
			if err != nil {
				if rerr := tx.Rollback(); rerr != nil {
					err = fmt.Errorf("%w: %v", err, rerr)
				}
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return buildID, nil
}

// ListBuilds 按时间倒序列出最近的构建
func (s *Storage) ListBuilds(limit int) ([]BuildSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`SELECT b.id, b.created_at, COUNT(i.id)
		FROM ranking_builds b
		LEFT JOIN ranking_items i ON i.build_id = b.id
		GROUP BY b.id, b.created_at
		ORDER BY b.created_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var builds []BuildSummary
	for rows.Next() {
		var b BuildSummary
		if err := rows.Scan(&b.ID, &b.CreatedAt, &b.ItemCount); err != nil {
			return nil, err
		}
		builds = append(builds, b)
	}
	return builds, rows.Err()
}

// GetBuild 读取一次历史构建的完整榜单
func (s *Storage) GetBuild(buildID int) (*model.RankingPayload, error) {
	rows, err := s.db.Query(`SELECT time_window, name, url, description, stars, language, count, chinese_desc, detailed_desc
		FROM ranking_items
		WHERE build_id = $1
		ORDER BY time_window, position`, buildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payload := &model.RankingPayload{}
	for rows.Next() {
		var window string
		var item model.RankingItem
		if err := rows.Scan(&window, &item.Name, &item.URL, &item.Description,
			&item.Stars, &item.Language, &item.Count, &item.ChineseDesc, &item.DetailedDesc); err != nil {
			return nil, err
		}

		switch window {
		case "week":
			payload.Week = append(payload.Week, item)
		case "month":
			payload.Month = append(payload.Month, item)
		case "quarter":
			payload.Quarter = append(payload.Quarter, item)
		}
	}
	return payload, rows.Err()
}
