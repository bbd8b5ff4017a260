package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// MovieRepo encapsulates catalog persistence. A movie "document" is one
// row in `movies` plus its ordered child rows in `episodes` and `ads`;
// every write touches all three tables inside a single transaction so the
// document is never observable half-written.
type MovieRepo struct{ DB *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{DB: db} }

// MoviePatch carries a partial update. Nil fields are left unchanged;
// a non-nil Episodes or Ads slice replaces the child list wholesale,
// matching document-level last-write-wins semantics.
type MoviePatch struct {
	Title    *string
	Poster   *string
	Video    *string
	Category *string
	Rating   *string
	Episodes *[]model.Episode
	Ads      *[]model.Ad
}

// applyPatch overlays the non-nil fields of p onto m.
func applyPatch(m *model.Movie, p MoviePatch) {
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Poster != nil {
		m.Poster = *p.Poster
	}
	if p.Video != nil {
		m.Video = *p.Video
	}
	if p.Category != nil {
		m.Category = *p.Category
	}
	if p.Rating != nil {
		m.Rating = *p.Rating
	}
	if p.Episodes != nil {
		m.Episodes = *p.Episodes
	}
	if p.Ads != nil {
		m.Ads = *p.Ads
	}
}

// Create inserts the movie and its children and fills in the assigned id.
func (r *MovieRepo) Create(ctx context.Context, m *model.Movie) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO movies (title, poster_url, video_url, category, rating) VALUES (?,?,?,?,?)",
		m.Title, m.Poster, m.Video, m.Category, m.Rating)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)

	if err := insertChildren(ctx, tx, m.ID, m.Episodes, m.Ads); err != nil {
		return err
	}
	return tx.Commit()
}

// List returns every movie with its children, ordered by id. Episode and
// ad slices are always non-nil so the JSON encoding matches what clients
// sent in.
func (r *MovieRepo) List(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,title,poster_url,video_url,category,rating FROM movies ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	movies := make([]model.Movie, 0)
	index := make(map[uint64]int) // movie id -> position in movies
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Poster, &m.Video, &m.Category, &m.Rating); err != nil {
			return nil, err
		}
		m.Episodes = make([]model.Episode, 0)
		m.Ads = make([]model.Ad, 0)
		index[m.ID] = len(movies)
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(movies) == 0 {
		return movies, nil
	}

	epRows, err := r.DB.QueryContext(ctx,
		"SELECT movie_id,title,video_url FROM episodes ORDER BY movie_id, ord")
	if err != nil {
		return nil, err
	}
	defer epRows.Close()
	for epRows.Next() {
		var (
			movieID uint64
			ep      model.Episode
		)
		if err := epRows.Scan(&movieID, &ep.Title, &ep.Video); err != nil {
			return nil, err
		}
		if i, ok := index[movieID]; ok {
			movies[i].Episodes = append(movies[i].Episodes, ep)
		}
	}
	if err := epRows.Err(); err != nil {
		return nil, err
	}

	adRows, err := r.DB.QueryContext(ctx,
		"SELECT movie_id,kind,url,placement FROM ads ORDER BY movie_id, ord")
	if err != nil {
		return nil, err
	}
	defer adRows.Close()
	for adRows.Next() {
		var (
			movieID uint64
			ad      model.Ad
		)
		if err := adRows.Scan(&movieID, &ad.Kind, &ad.URL, &ad.Position); err != nil {
			return nil, err
		}
		if i, ok := index[movieID]; ok {
			movies[i].Ads = append(movies[i].Ads, ad)
		}
	}
	if err := adRows.Err(); err != nil {
		return nil, err
	}
	return movies, nil
}

// GetByID loads a single movie document. Returns ErrMovieNotFound when no
// row matches.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	var m model.Movie
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,title,poster_url,video_url,category,rating FROM movies WHERE id=? LIMIT 1",
		id).Scan(&m.ID, &m.Title, &m.Poster, &m.Video, &m.Category, &m.Rating)
	if err == sql.ErrNoRows {
		return model.Movie{}, ErrMovieNotFound
	}
	if err != nil {
		return model.Movie{}, err
	}

	m.Episodes = make([]model.Episode, 0)
	epRows, err := r.DB.QueryContext(ctx,
		"SELECT title,video_url FROM episodes WHERE movie_id=? ORDER BY ord", id)
	if err != nil {
		return model.Movie{}, err
	}
	defer epRows.Close()
	for epRows.Next() {
		var ep model.Episode
		if err := epRows.Scan(&ep.Title, &ep.Video); err != nil {
			return model.Movie{}, err
		}
		m.Episodes = append(m.Episodes, ep)
	}
	if err := epRows.Err(); err != nil {
		return model.Movie{}, err
	}

	m.Ads = make([]model.Ad, 0)
	adRows, err := r.DB.QueryContext(ctx,
		"SELECT kind,url,placement FROM ads WHERE movie_id=? ORDER BY ord", id)
	if err != nil {
		return model.Movie{}, err
	}
	defer adRows.Close()
	for adRows.Next() {
		var ad model.Ad
		if err := adRows.Scan(&ad.Kind, &ad.URL, &ad.Position); err != nil {
			return model.Movie{}, err
		}
		m.Ads = append(m.Ads, ad)
	}
	if err := adRows.Err(); err != nil {
		return model.Movie{}, err
	}
	return m, nil
}

// Update overlays the patch onto the stored document and returns the
// result. Child lists present in the patch are replaced wholesale.
func (r *MovieRepo) Update(ctx context.Context, id uint64, p MoviePatch) (model.Movie, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Movie{}, err
	}
	applyPatch(&current, p)

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return model.Movie{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"UPDATE movies SET title=?, poster_url=?, video_url=?, category=?, rating=? WHERE id=?",
		current.Title, current.Poster, current.Video, current.Category, current.Rating, id); err != nil {
		return model.Movie{}, err
	}
	if p.Episodes != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM episodes WHERE movie_id=?", id); err != nil {
			return model.Movie{}, err
		}
	}
	if p.Ads != nil {
		if _, err := tx.ExecContext(ctx, "DELETE FROM ads WHERE movie_id=?", id); err != nil {
			return model.Movie{}, err
		}
	}
	var eps []model.Episode
	if p.Episodes != nil {
		eps = current.Episodes
	}
	var ads []model.Ad
	if p.Ads != nil {
		ads = current.Ads
	}
	if err := insertChildren(ctx, tx, id, eps, ads); err != nil {
		return model.Movie{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Movie{}, err
	}
	return current, nil
}

// Delete removes a movie; child rows go with it via ON DELETE CASCADE.
// It reports whether a row actually matched so callers can choose between
// strict and lenient semantics.
func (r *MovieRepo) Delete(ctx context.Context, id uint64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM movies WHERE id=?", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// insertChildren bulk-inserts episode and ad rows for a movie. Either
// slice may be empty. The ord column preserves client ordering.
func insertChildren(ctx context.Context, tx *sql.Tx, movieID uint64, eps []model.Episode, ads []model.Ad) error {
	if len(eps) > 0 {
		query := "INSERT INTO episodes (movie_id, ord, title, video_url) VALUES "
		args := make([]interface{}, 0, len(eps)*4)
		for i, ep := range eps {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?)"
			args = append(args, movieID, i, ep.Title, ep.Video)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	if len(ads) > 0 {
		query := "INSERT INTO ads (movie_id, ord, kind, url, placement) VALUES "
		args := make([]interface{}, 0, len(ads)*5)
		for i, ad := range ads {
			if i > 0 {
				query += ","
			}
			query += "(?, ?, ?, ?, ?)"
			args = append(args, movieID, i, string(ad.Kind), ad.URL, string(ad.Position))
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	return nil
}
