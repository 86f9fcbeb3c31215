package infra

import (
	"fmt"

	"github.com/logicnauts-sketch/Sistema-Facturacion/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase establishes a GORM connection backed by pgx, runs AutoMigrate to
// create / update all tables, then applies idempotent SQL patches for the
// constraints GORM cannot express (partial unique indexes).
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true, // surface unique violations as gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}

	return db, nil
}

// RunMigrations creates / updates the schema. Also used by integration tests
// against a fresh database.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Producto{},
		&model.MovimientoStock{},
		&model.Usuario{},
		&model.Turno{},
		&model.MovimientoCaja{},
		&model.Factura{},
		&model.DetalleFactura{},
		&model.NCFSecuencia{},
		&model.Cliente{},
		&model.Proveedor{},
		&model.CuentaPorCobrar{},
		&model.CuentaPorPagar{},
		&model.Impresora{},
		&model.Empresa{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return applySchemaPatches(db)
}

// applySchemaPatches runs idempotent DDL that AutoMigrate cannot handle.
// Each statement uses IF NOT EXISTS semantics so re-running is safe.
func applySchemaPatches(db *gorm.DB) error {
	patches := []string{
		// At most one open shift, enforced by the database so concurrent
		// openers cannot both win.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uq_turnos_abierta') THEN
		    CREATE UNIQUE INDEX uq_turnos_abierta
		        ON turnos (estado)
		        WHERE estado = 'abierta';
		  END IF;
		END $$`,
		// One cash movement per invoice per shift.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_indexes WHERE indexname = 'uq_movimientos_caja_turno_factura') THEN
		    CREATE UNIQUE INDEX uq_movimientos_caja_turno_factura
		        ON movimientos_caja (turno_id, factura_id)
		        WHERE factura_id IS NOT NULL;
		  END IF;
		END $$`,
	}

	for _, sql := range patches {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", sql[:min(len(sql), 60)], err)
		}
	}
	return nil
}
