package dorothea

import (
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	sqlx "github.com/jmoiron/sqlx" //make alias name the package to sqlx
	_ "modernc.org/sqlite"
)

func ConnectToDatabase(user string, pass string, host string, dbname string) (*sqlx.DB, error) {
	port := "3306"
	dbURI := fmt.Sprintf("%s:%s@(%s:%s)/%s?parseTime=true", user, pass, host, port, dbname)
	db, err := sqlx.Connect("mysql", dbURI)
	return db, err
}

// ConnectToLocalDatabase opens an offline copy of the detector database,
// the sqlite file distributed with the production configurations.
func ConnectToLocalDatabase(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path)
	return db, err
}

type ChannelPositionEntry struct {
	SensorID int     `db:"SensorID"`
	X        float64 `db:"X"`
	Y        float64 `db:"Y"`
}

// GetSiPMPositions reads the SiPM positions valid for runNumber. An empty
// result means the run is outside every validity window, which is an
// error: position reconstruction needs the full table.
func GetSiPMPositions(db *sqlx.DB, runNumber int) (map[int]XY, error) {
	query := "SELECT SensorID, X, Y FROM ChannelPosition WHERE Label = 'SiPM' AND MinRun <= %d AND MaxRun >= %d ORDER BY SensorID"
	query = fmt.Sprintf(query, runNumber, runNumber)

	if configuration.Verbosity > 0 {
		logger.Info("SiPM positions read from DB", "database")
	}
	if configuration.Verbosity > 2 {
		message := fmt.Sprintf("Query: %s", query)
		logger.Info(message, "database")
	}

	rows, err := db.Queryx(query)
	if err != nil {
		errMessage := fmt.Errorf("error querying database: %w", err)
		return nil, errMessage
	}
	defer rows.Close()

	positions := make(map[int]XY)
	for rows.Next() {
		result := ChannelPositionEntry{}
		err := rows.StructScan(&result)
		if err != nil {
			errMessage := fmt.Errorf("error scanning DB row: %w", err)
			return nil, errMessage
		}
		positions[result.SensorID] = XY{X: result.X, Y: result.Y}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading DB rows: %w", err)
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("no SiPM positions for run %d", runNumber)
	}
	return positions, nil
}
