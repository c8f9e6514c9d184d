package migrations

import "fmt"

// now is the millisecond UTC timestamp written by column defaults and the
// update triggers.
const now = `strftime('%Y-%m-%d %H:%M:%f', 'now')`

// Chain returns the shipped migration history. It is append-only: never
// edit or reorder an entry once released, add a new one instead.
func Chain() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "create_initial_tables",
			Statements: []string{
				`CREATE TABLE IF NOT EXISTS client (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    company TEXT NOT NULL UNIQUE,
    first_name TEXT,
    last_name TEXT,
    email TEXT,
    phone TEXT,
    province TEXT NOT NULL,
    city TEXT NOT NULL,
    deleted INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT (` + now + `),
    updated_at DATETIME NOT NULL DEFAULT (` + now + `)
)`,
				`CREATE TABLE IF NOT EXISTS auction (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    province TEXT NOT NULL,
    city TEXT NOT NULL,
    date DATE NOT NULL,
    status TEXT NOT NULL DEFAULT 'PENDING'
        CONSTRAINT chk_auction_status CHECK (status IN ('PENDING', 'IN_PROGRESS', 'CANCELLED', 'FINISHED')),
    deleted INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT (` + now + `),
    updated_at DATETIME NOT NULL DEFAULT (` + now + `)
)`,
				`CREATE TABLE IF NOT EXISTS bundle (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    number INTEGER NOT NULL,
    name TEXT NOT NULL,
    observations TEXT,
    seller_id INTEGER NOT NULL,
    auction_id INTEGER NOT NULL,
    deleted INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT (` + now + `),
    updated_at DATETIME NOT NULL DEFAULT (` + now + `),
    FOREIGN KEY (seller_id) REFERENCES client(id) ON DELETE CASCADE ON UPDATE CASCADE,
    FOREIGN KEY (auction_id) REFERENCES auction(id) ON DELETE CASCADE ON UPDATE CASCADE,
    UNIQUE (number, auction_id)
)`,
				`CREATE TABLE IF NOT EXISTS sales (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    auction_id INTEGER NOT NULL,
    buyer_id INTEGER,
    total_price REAL NOT NULL DEFAULT 0
        CONSTRAINT chk_sales_total_price CHECK (total_price >= 0),
    deadline DATE NOT NULL,
    deleted INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT (` + now + `),
    updated_at DATETIME NOT NULL DEFAULT (` + now + `),
    FOREIGN KEY (auction_id) REFERENCES auction(id) ON DELETE CASCADE ON UPDATE CASCADE,
    FOREIGN KEY (buyer_id) REFERENCES client(id) ON DELETE SET NULL ON UPDATE CASCADE
)`,
				`CREATE TABLE IF NOT EXISTS sales_details (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    sale_id INTEGER NOT NULL,
    bundle_id INTEGER NOT NULL,
    created_at DATETIME NOT NULL DEFAULT (` + now + `),
    updated_at DATETIME NOT NULL DEFAULT (` + now + `),
    FOREIGN KEY (sale_id) REFERENCES sales(id) ON DELETE CASCADE ON UPDATE CASCADE,
    FOREIGN KEY (bundle_id) REFERENCES bundle(id) ON DELETE CASCADE ON UPDATE CASCADE,
    UNIQUE (sale_id, bundle_id)
)`,
				touchTrigger("client"),
				touchTrigger("auction"),
				touchTrigger("bundle"),
				touchTrigger("sales"),
				touchTrigger("sales_details"),
			},
		},
		{
			Version:     2,
			Description: "add_transactions_table",
			Statements: []string{
				`CREATE TABLE IF NOT EXISTS transactions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    auction_id INTEGER NOT NULL,
    client_id INTEGER NOT NULL,
    amount REAL NOT NULL
        CONSTRAINT chk_transactions_amount CHECK (amount >= 0),
    type TEXT NOT NULL
        CONSTRAINT chk_transactions_type CHECK (type IN ('PAYMENT', 'COLLECTION')),
    deleted INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT (` + now + `),
    updated_at DATETIME NOT NULL DEFAULT (` + now + `),
    FOREIGN KEY (auction_id) REFERENCES auction(id) ON DELETE CASCADE ON UPDATE CASCADE,
    FOREIGN KEY (client_id) REFERENCES client(id) ON DELETE CASCADE ON UPDATE CASCADE
)`,
				touchTrigger("transactions"),
			},
		},
		{
			Version:     3,
			Description: "add_province_catalog",
			Statements: []string{
				`CREATE TABLE IF NOT EXISTS province (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
)`,
				`INSERT OR IGNORE INTO province (name) VALUES
    ('Buenos Aires'), ('Catamarca'), ('Chaco'), ('Chubut'), ('Córdoba'),
    ('Corrientes'), ('Entre Ríos'), ('Formosa'), ('Jujuy'), ('La Pampa'),
    ('La Rioja'), ('Mendoza'), ('Misiones'), ('Neuquén'), ('Río Negro'),
    ('Salta'), ('San Juan'), ('San Luis'), ('Santa Cruz'), ('Santa Fe'),
    ('Santiago del Estero'), ('Tierra del Fuego'), ('Tucumán')`,
			},
		},
		{
			Version:     4,
			Description: "add_foreign_key_indexes",
			Statements: []string{
				`CREATE INDEX IF NOT EXISTS idx_bundle_seller ON bundle(seller_id)`,
				`CREATE INDEX IF NOT EXISTS idx_bundle_auction ON bundle(auction_id)`,
				`CREATE INDEX IF NOT EXISTS idx_sales_auction ON sales(auction_id)`,
				`CREATE INDEX IF NOT EXISTS idx_sales_buyer ON sales(buyer_id)`,
				`CREATE INDEX IF NOT EXISTS idx_sales_details_bundle ON sales_details(bundle_id)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_auction ON transactions(auction_id)`,
				`CREATE INDEX IF NOT EXISTS idx_transactions_client ON transactions(client_id)`,
			},
		},
	}
}

// touchTrigger refreshes updated_at after every row update, whatever the
// statement changed. recursive_triggers is off, so the inner UPDATE does
// not fire the trigger again.
func touchTrigger(table string) string {
	return fmt.Sprintf(`CREATE TRIGGER IF NOT EXISTS update_%[1]s_timestamp
AFTER UPDATE ON %[1]s
FOR EACH ROW
BEGIN
    UPDATE %[1]s SET updated_at = %[2]s WHERE id = OLD.id;
END`, table, now)
}
