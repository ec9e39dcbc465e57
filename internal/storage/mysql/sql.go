package mysql

const insertCellsPrefix = "INSERT INTO price_cells\n  (run_id, hotel_no, hotel_name, stay_date, adults, category, found, total_charge, plan_name, room_name)\nVALUES "

const insertCellsRow = "(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

// A re-saved cell within the same run keeps the latest outcome.
const insertCellsOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  hotel_name   = VALUES(hotel_name),\n" +
	"  found        = VALUES(found),\n" +
	"  total_charge = VALUES(total_charge),\n" +
	"  plan_name    = VALUES(plan_name),\n" +
	"  room_name    = VALUES(room_name)"

const listPricesSQL = `
SELECT run_id, hotel_no, hotel_name, stay_date, adults, category, found, total_charge, plan_name, room_name, created_at
FROM price_cells
WHERE hotel_no = ?
ORDER BY created_at DESC, id DESC
LIMIT ?`
