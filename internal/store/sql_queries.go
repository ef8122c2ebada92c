package store

const (
	findUserByLogin = `SELECT user_id, name, login, password, email, active
    FROM users
    WHERE login = $1;`

	findUserByID = `SELECT user_id, name, login, password, email, active
    FROM users
    WHERE user_id = $1;`

	saveSessionEntry = `INSERT INTO sessions (session_hash, user_id, created_at)
    VALUES ($1, $2, $3)
    ON CONFLICT (session_hash) DO UPDATE
    SET user_id = EXCLUDED.user_id, created_at = EXCLUDED.created_at;`

	findSessionEntry = `SELECT session_hash, user_id, created_at
    FROM sessions
    WHERE session_hash = $1;`

	findSessionEntryByUserID = `SELECT session_hash, user_id, created_at
    FROM sessions
    WHERE user_id = $1
    LIMIT 1;`

	removeSessionEntry = `DELETE FROM sessions
    WHERE session_hash = $1;`

	removeExpiredSessionEntries = `DELETE FROM sessions
    WHERE created_at + $1 < $2;`

	getAllCategories = `SELECT id, parent_id, name
    FROM product_categories
    ORDER BY id;`

	getProductByID = `SELECT id, name, description, image_path, price
    FROM products
    WHERE id = $1;`

	getProductCategoryIDs = `SELECT category_id
    FROM product_categories_assoc
    WHERE product_id = $1
    ORDER BY category_id;`

	getProductFeatures = `SELECT f.id, f.name
    FROM product_features f
    JOIN product_features_assoc a ON a.feature_id = f.id
    WHERE a.product_id = $1
    ORDER BY f.id;`

	insertOrder = `INSERT INTO orders (user_id, shipping_address_id, datetime)
    VALUES ($1, $2, $3)
    RETURNING order_id;`

	insertOrderItem = `INSERT INTO order_items (order_id, product_id, quantity)
    VALUES ($1, $2, $3);`

	updateOrder = `UPDATE orders
    SET shipping_address_id = $3, datetime = $4
    WHERE order_id = $1 AND user_id = $2;`

	deleteOrderItems = `DELETE FROM order_items
    WHERE order_id = $1;`

	findMainAddress = `SELECT id, user_id, main, street, number, complement, neighborhood, city, state, cep
    FROM user_addresses
    WHERE user_id = $1 AND main = TRUE
    LIMIT 1;`

	findAddress = `SELECT id, user_id, main, street, number, complement, neighborhood, city, state, cep
    FROM user_addresses
    WHERE user_id = $1 AND id = $2;`
)
