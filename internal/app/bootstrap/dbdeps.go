// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/Foragefoxoffice/Cotco-backend/internal/app/system/mailer"
	"github.com/dalemusser/waffle/pantry/storage"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps carries the backend connections built in ConnectDB to the rest of
// the application (EnsureSchema, Startup, BuildHandler, Shutdown).
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	FileStorage   storage.Store
	Mailer        *mailer.Mailer
}
