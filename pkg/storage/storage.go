package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/cockroachdb/errors"
	_ "modernc.org/sqlite"

	"github.com/freegames-hub/freegames/pkg/offers"
)

// ErrNoSnapshot is returned by LoadSnapshot before the first write.
var ErrNoSnapshot = errors.New("no snapshot stored")

const timeLayout = time.RFC3339Nano

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS snapshot_meta (
  id           INTEGER PRIMARY KEY CHECK (id = 1),
  batch_id     TEXT NOT NULL,
  generated_at TEXT NOT NULL,
  offer_count  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS snapshot_offers (
  position          INTEGER NOT NULL,
  source            TEXT NOT NULL,
  offer_id          TEXT NOT NULL,
  title             TEXT NOT NULL,
  description       TEXT,
  cover_image       TEXT NOT NULL,
  images            TEXT NOT NULL,
  price             TEXT,
  promotion_windows TEXT NOT NULL,
  external_url      TEXT NOT NULL,
  is_free_override  INTEGER CHECK (is_free_override IN (0,1)),
  platforms         TEXT,
  store_domain      TEXT,
  instructions      TEXT,
  fetched_at        TEXT NOT NULL,
  PRIMARY KEY (source, offer_id)
);
CREATE INDEX IF NOT EXISTS idx_snapshot_position ON snapshot_offers(position);
    `); err != nil {
		db.Close()
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// ReplaceSnapshot overwrites the stored snapshot in one transaction. Readers
// see either the previous snapshot or the new one.
func (d *DB) ReplaceSnapshot(ctx context.Context, snap Snapshot) (err error) {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "DELETE FROM snapshot_offers"); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO snapshot_offers(
  position, source, offer_id, title, description, cover_image, images, price,
  promotion_windows, external_url, is_free_override, platforms, store_domain,
  instructions, fetched_at) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, o := range snap.Offers {
		var images, price, windows, platforms []byte
		if images, err = json.Marshal(nonNilImages(o.Images)); err != nil {
			return err
		}
		if o.Price != nil {
			if price, err = json.Marshal(o.Price); err != nil {
				return err
			}
		}
		if windows, err = json.Marshal(nonNilWindows(o.PromotionWindows)); err != nil {
			return err
		}
		if len(o.Platforms) > 0 {
			if platforms, err = json.Marshal(o.Platforms); err != nil {
				return err
			}
		}

		_, err = stmt.ExecContext(ctx,
			i, string(o.Source), o.ID, o.Title, nullIfEmpty(o.Description), o.CoverImage,
			string(images), nullIfEmpty(string(price)), string(windows), o.ExternalURL,
			nullBool(o.IsFreeOverride), nullIfEmpty(string(platforms)), nullIfEmpty(o.StoreDomain),
			nullIfEmpty(o.Instructions), o.FetchedAt.UTC().Format(timeLayout),
		)
		if err != nil {
			return errors.Wrapf(err, "storing offer %s", o.Key())
		}
	}

	_, err = tx.ExecContext(ctx, `INSERT INTO snapshot_meta(id, batch_id, generated_at, offer_count) VALUES(1,?,?,?)
ON CONFLICT(id) DO UPDATE SET batch_id = excluded.batch_id, generated_at = excluded.generated_at, offer_count = excluded.offer_count`,
		snap.BatchID, snap.GeneratedAt.UTC().Format(timeLayout), len(snap.Offers))
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadSnapshot reads the stored snapshot in its original order.
func (d *DB) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	var generated string
	err := d.sql.QueryRowContext(ctx, "SELECT batch_id, generated_at FROM snapshot_meta WHERE id = 1").Scan(&snap.BatchID, &generated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, err
	}
	if snap.GeneratedAt, err = time.Parse(timeLayout, generated); err != nil {
		return nil, errors.Wrap(err, "parsing snapshot time")
	}

	rows, err := d.sql.QueryContext(ctx, `SELECT source, offer_id, title, description, cover_image, images, price,
  promotion_windows, external_url, is_free_override, platforms, store_domain, instructions, fetched_at
  FROM snapshot_offers ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	snap.Offers = []offers.Offer{}
	for rows.Next() {
		var (
			o                                     offers.Offer
			source, images, windows, fetched      string
			desc, price, platforms, domain, instr sql.NullString
			override                              sql.NullInt64
		)
		if err := rows.Scan(&source, &o.ID, &o.Title, &desc, &o.CoverImage, &images, &price,
			&windows, &o.ExternalURL, &override, &platforms, &domain, &instr, &fetched); err != nil {
			return nil, err
		}
		o.Source = offers.Source(source)
		o.Description = desc.String
		o.StoreDomain = domain.String
		o.Instructions = instr.String
		o.IsFreeOverride = boolPtr(override)

		if err := json.Unmarshal([]byte(images), &o.Images); err != nil {
			return nil, errors.Wrapf(err, "decoding images of %s", o.Key())
		}
		if err := json.Unmarshal([]byte(windows), &o.PromotionWindows); err != nil {
			return nil, errors.Wrapf(err, "decoding windows of %s", o.Key())
		}
		if price.Valid {
			o.Price = &offers.Price{}
			if err := json.Unmarshal([]byte(price.String), o.Price); err != nil {
				return nil, errors.Wrapf(err, "decoding price of %s", o.Key())
			}
		}
		if platforms.Valid {
			if err := json.Unmarshal([]byte(platforms.String), &o.Platforms); err != nil {
				return nil, errors.Wrapf(err, "decoding platforms of %s", o.Key())
			}
		}
		if o.FetchedAt, err = time.Parse(timeLayout, fetched); err != nil {
			return nil, errors.Wrapf(err, "parsing fetch time of %s", o.Key())
		}
		snap.Offers = append(snap.Offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return snap, nil
}

func nonNilImages(in []offers.Image) []offers.Image {
	if in == nil {
		return []offers.Image{}
	}
	return in
}

func nonNilWindows(in []offers.Window) []offers.Window {
	if in == nil {
		return []offers.Window{}
	}
	return in
}
