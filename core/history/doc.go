// Package history records comparison runs in a SQL database through gorm.
//
// A Run stores the request identity (mode, sources, partitions, key column),
// the bucket counts of the result, the report location and the outcome.
// Key lists are not stored; the report holds the detail.
//
// # Usage
//
//	repo := history.NewRepository(db)
//	if err := repo.Migrate(); err != nil {
//	    return err
//	}
//	err = repo.Save(ctx, history.Succeeded(res, reportLocation))
//	runs, err := repo.List(ctx, 20)
package history
