// Package pg wraps pgxpool with the connection, migration and error helpers the
// billing stores rely on.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil {
//		return err
//	}
//
// IsDuplicateKeyError and IsNotFoundError classify driver errors without leaking
// pgconn types into callers.
package pg
