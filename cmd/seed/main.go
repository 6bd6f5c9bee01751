package main

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"cinelist/internal/config"
	"cinelist/internal/db"
	apperr "cinelist/internal/errors"
	"cinelist/internal/model"
	"cinelist/internal/repository"
)

type seedMovie struct {
	tmdbID      int
	title       string
	posterPath  string
	overview    string
	releaseDate string
	voteAverage float64
}

var sampleMovies = []seedMovie{
	{550, "Fight Club", "/pB8BM7pdSp6B6Ih7QZ4DrQ3PmJK.jpg", "An insomniac office worker and a soap maker form an underground fight club.", "1999-10-15", 8.4},
	{155, "Batman Begins", "/8RW2runSEc34BwKTN7H5pCl0yOD.jpg", "After training with his mentor, Batman begins his fight to free Gotham City from corruption.", "2005-06-10", 7.7},
	{13, "Forrest Gump", "/arw2vcBveWOVZr6pxd9XTd1TdQa.jpg", "Forrest Gump recounts several decades of his life that coincided with major historical events.", "1994-06-23", 8.5},
	{680, "Pulp Fiction", "/dM2w364MScsjFf8pfMbaWUcWrR.jpg", "The lives of two mob hitmen, a boxer and a pair of bandits intertwine.", "1994-09-10", 8.5},
	{27205, "Inception", "/9gk7adHYeDvHkCSEqAvQNLV5Uge.jpg", "Dom Cobb is a thief who specializes in extracting secrets from the subconscious during sleep.", "2010-07-15", 8.4},
}

func main() {
	log.Info("starting seed script")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	log.Info("connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.MovieList{}, &model.MovieListItem{}); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}
	log.Info("database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	lists := repository.NewListRepository(gormDB)

	user, err := ensureUser(ctx, users, "test@example.com", "Test User", "password123")
	if err != nil {
		log.WithError(err).Fatal("failed to seed user")
	}

	favorites, err := ensureList(ctx, gormDB, lists, user.ID, "Favorite Movies", "My personal list of all-time favorite movies", true)
	if err != nil {
		log.WithError(err).Fatal("failed to seed favorites list")
	}
	watchLater, err := ensureList(ctx, gormDB, lists, user.ID, "Watch Later", "Movies I want to watch when I have time", false)
	if err != nil {
		log.WithError(err).Fatal("failed to seed watch later list")
	}
	action, err := ensureList(ctx, gormDB, lists, user.ID, "Best Action Movies", "The best action movies I have seen", true)
	if err != nil {
		log.WithError(err).Fatal("failed to seed action list")
	}

	added := 0
	for _, movie := range sampleMovies {
		notes := "One of my all-time favorites!"
		if ok, err := ensureItem(ctx, lists, favorites.ID, movie, &notes); err != nil {
			log.WithError(err).Fatal("failed to seed list item")
		} else if ok {
			added++
		}
		if movie.tmdbID == 155 || movie.tmdbID == 27205 {
			if ok, err := ensureItem(ctx, lists, action.ID, movie, nil); err != nil {
				log.WithError(err).Fatal("failed to seed list item")
			} else if ok {
				added++
			}
		}
		if movie.tmdbID == 13 || movie.tmdbID == 680 {
			if ok, err := ensureItem(ctx, lists, watchLater.ID, movie, nil); err != nil {
				log.WithError(err).Fatal("failed to seed list item")
			} else if ok {
				added++
			}
		}
	}

	log.WithFields(log.Fields{
		"user":  user.Email,
		"lists": 3,
		"items": added,
	}).Info("seed completed successfully")
}

// ensureUser creates the demo user unless it already exists.
func ensureUser(ctx context.Context, users repository.UserRepository, email, name, password string) (*model.User, error) {
	existing, err := users.FindByEmail(ctx, email)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Name:            name,
		Email:           email,
		PasswordHash:    string(hashed),
		IsPublicProfile: true,
	}
	if err := users.Create(ctx, user); err != nil {
		return nil, err
	}
	log.WithField("email", email).Info("created demo user")
	return user, nil
}

// ensureList creates a named list for the user unless one already exists.
func ensureList(ctx context.Context, gormDB *gorm.DB, lists repository.ListRepository, ownerID uint, name, description string, public bool) (*model.MovieList, error) {
	var existing model.MovieList
	err := gormDB.WithContext(ctx).
		Where("user_id = ? AND name = ?", ownerID, name).
		First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	list := &model.MovieList{
		UserID:      ownerID,
		Name:        name,
		Description: &description,
		IsPublic:    public,
	}
	if err := lists.Create(ctx, list); err != nil {
		return nil, err
	}
	log.WithField("name", name).Info("created demo list")
	return list, nil
}

// ensureItem adds a sample movie snapshot to a list, skipping duplicates.
func ensureItem(ctx context.Context, lists repository.ListRepository, listID uint, movie seedMovie, notes *string) (bool, error) {
	released, err := time.Parse("2006-01-02", movie.releaseDate)
	if err != nil {
		return false, err
	}
	vote := decimal.NewFromFloat(movie.voteAverage).Round(1)

	item := &model.MovieListItem{
		MovieListID:      listID,
		TMDBMovieID:      movie.tmdbID,
		MovieTitle:       movie.title,
		MoviePosterPath:  &movie.posterPath,
		MovieOverview:    &movie.overview,
		MovieReleaseDate: &released,
		MovieVoteAverage: &vote,
		UserNotes:        notes,
	}
	if err := lists.AddItem(ctx, item); err != nil {
		if errors.Is(err, apperr.ErrDuplicateItem) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
