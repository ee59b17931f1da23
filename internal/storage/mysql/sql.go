package mysql

const insertBookingSQL = `
INSERT INTO bookings
  (id, user_name, business_id, service, date, time, email, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?)
`

const listBookingsByBusinessSQL = `
SELECT id, user_name, business_id, service, date, time, email, created_at
FROM bookings
WHERE business_id = ?
ORDER BY created_at DESC, id
`

const insertUserSQL = `
INSERT INTO business_users (email, password_hash, name)
VALUES (?, ?, ?)
`

const getUserByEmailSQL = `
SELECT id, email, password_hash, name, created_at
FROM business_users
WHERE email = ?
`

const getUserByIDSQL = `
SELECT id, email, password_hash, name, created_at
FROM business_users
WHERE id = ?
`

// The businesses mirror stores services and availability as JSON columns so
// the sheet can add weekday columns without schema changes.
const upsertBusinessSQL = `
INSERT INTO businesses (id, name, city, services, availability, row_order)
VALUES (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  name         = VALUES(name),
  city         = VALUES(city),
  services     = VALUES(services),
  availability = VALUES(availability),
  row_order    = VALUES(row_order),
  updated_at   = CURRENT_TIMESTAMP
`

const listBusinessesSQL = `
SELECT id, name, city, services, availability
FROM businesses
ORDER BY row_order, id
`
