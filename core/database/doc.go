// Package database opens the gorm connection used for comparison history.
//
// Two drivers are supported: "sqlite" (Name is a file path or ":memory:")
// and "mysql". Connect pings the database before returning it.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Warn("History disabled", zap.Error(err))
//	}
package database
