package cli

import (
	"bufio"
	"context"
	"database/sql"
	"os"

	"github.com/dmitrijs2005/budgetkeeper/internal/client/config"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/keystore"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/repositories/budgets"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/repositories/keys"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/repositories/profiles"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/repositories/transactions"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/services"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/session"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/storage"
	"github.com/dmitrijs2005/budgetkeeper/internal/client/txcodec"
	"github.com/dmitrijs2005/budgetkeeper/internal/logging"
	"go.mongodb.org/mongo-driver/mongo"
)

type App struct {
	config *config.Config
	log    logging.Logger
	reader *bufio.Reader

	localDB     *sql.DB
	mongoClient *mongo.Client

	sess     *session.Session
	keystore *keystore.Store

	txService     services.TransactionService
	budgetService services.BudgetService
	analytics     services.AnalyticsService
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	localDB, err := storage.OpenLocal(ctx, c.CacheDSN)
	if err != nil {
		log.Error(ctx, "error initializing local cache", "error", err)
		return nil, err
	}

	mongoClient, err := storage.Connect(ctx, c.MongoURI, log)
	if err != nil {
		_ = localDB.Close()
		return nil, err
	}
	db := mongoClient.Database(c.DatabaseName)

	ks := keystore.New(keys.NewSQLiteRepository(localDB), profiles.NewMongoRepository(db), c.SharedSecret, log)
	sess := session.New(ks, log)

	codec := txcodec.New(log)
	txSvc := services.NewTransactionService(sess, transactions.NewMongoRepository(db), codec, log)
	budgetSvc := services.NewBudgetService(sess, budgets.NewMongoRepository(db), txSvc, log)

	return &App{
		config:        c,
		log:           log,
		reader:        bufio.NewReader(os.Stdin),
		localDB:       localDB,
		mongoClient:   mongoClient,
		sess:          sess,
		keystore:      ks,
		txService:     txSvc,
		budgetService: budgetSvc,
		analytics:     services.NewAnalyticsService(txSvc),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.close(ctx)
	a.Root(ctx)
}

func (a *App) close(ctx context.Context) {
	a.sess.Close()
	if err := a.mongoClient.Disconnect(ctx); err != nil {
		a.log.Warn(ctx, "error disconnecting from document store", "error", err)
	}
	if err := a.localDB.Close(); err != nil {
		a.log.Warn(ctx, "error closing local cache", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.sess.Ready()
}

// opCtx bounds a remote store operation with the configured query timeout.
func (a *App) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, a.config.QueryTimeout)
}
