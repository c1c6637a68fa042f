package opencity2k

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// CityDB is an index of scanned cities keyed by file checksum.
type CityDB struct {
	db *sql.DB
}

// Record is one indexed city.
type Record struct {
	ID         int64
	CRC        string
	Path       string
	Name       string
	Year       int
	Population int32
	Funds      int32
	Scenario   bool
}

// NewCityDB opens, creating if necessary, the index database in file.
func NewCityDB(file string) (*CityDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS city (id INTEGER PRIMARY KEY NOT NULL, crc TEXT NOT NULL UNIQUE, name TEXT NOT NULL, year INTEGER, population INTEGER, funds INTEGER, scenario INTEGER NOT NULL DEFAULT 0)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS path (city_id INTEGER NOT NULL, path TEXT NOT NULL UNIQUE, FOREIGN KEY(city_id) REFERENCES city(id))"); err != nil {
		return nil, err
	}

	return &CityDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *CityDB) Close() error {
	return db.db.Close()
}

// AddCity records the summary of the city file at path with checksum crc,
// returning the id of the city. A city seen before under another path keeps
// its id and gains the new path.
func (db *CityDB) AddCity(crc, path string, s *Summary) (int64, error) {
	id, err := db.addCity(crc, s)
	if err != nil {
		return 0, err
	}
	if err := db.addPath(id, path); err != nil {
		return 0, err
	}
	return id, nil
}

func (db *CityDB) addCity(crc string, s *Summary) (int64, error) {
	// Workers may race to add the same city, the first insert wins
	if _, err := db.db.Exec("INSERT INTO city (crc, name, year, population, funds, scenario) VALUES (?, ?, ?, ?, ?, ?) ON CONFLICT(crc) DO NOTHING", crc, s.Name, s.Date.Year, s.Population, s.Funds, s.Scenario); err != nil {
		return 0, err
	}

	var id int64
	if err := db.db.QueryRow("SELECT id FROM city WHERE crc = ?", crc).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (db *CityDB) addPath(city int64, path string) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO path (city_id, path) VALUES (?, ?)", city, path); err != nil {
		return err
	}
	return nil
}

// FindByCRC returns the city with the given checksum, or nil if there is
// none. Path is the most recently recorded location of the file.
func (db *CityDB) FindByCRC(crc string) (*Record, error) {
	r := Record{CRC: crc}
	var year, population, funds sql.NullInt64
	var path sql.NullString
	switch err := db.db.QueryRow("SELECT c.id, c.name, c.year, c.population, c.funds, c.scenario, p.path FROM city AS c LEFT JOIN path AS p ON p.city_id = c.id WHERE c.crc = ? ORDER BY p.rowid DESC LIMIT 1", crc).Scan(&r.ID, &r.Name, &year, &population, &funds, &r.Scenario, &path); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		r.Year = int(year.Int64)
		r.Population = int32(population.Int64)
		r.Funds = int32(funds.Int64)
		r.Path = path.String
		return &r, nil
	default:
		return nil, err
	}
}

// Cities returns every indexed city ordered by name, one record per path.
func (db *CityDB) Cities() ([]Record, error) {
	rows, err := db.db.Query("SELECT c.id, c.crc, c.name, c.year, c.population, c.funds, c.scenario, p.path FROM city AS c JOIN path AS p ON p.city_id = c.id ORDER BY c.name, p.path")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var year, population, funds sql.NullInt64
		if err := rows.Scan(&r.ID, &r.CRC, &r.Name, &year, &population, &funds, &r.Scenario, &r.Path); err != nil {
			return nil, err
		}
		r.Year = int(year.Int64)
		r.Population = int32(population.Int64)
		r.Funds = int32(funds.Int64)
		records = append(records, r)
	}

	return records, rows.Err()
}
