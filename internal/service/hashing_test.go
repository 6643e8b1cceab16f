package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Тесты для hashPassword и checkPasswordHash

func TestHashAndCheckPassword(t *testing.T) {
	password := "mysecretpassword"
	pepper := "test-pepper-for-unit-tests"

	// 1. Хеширование
	hashedPassword, err := hashPassword(password, pepper)
	require.NoError(t, err, "hashPassword should not return an error")
	require.NotEmpty(t, hashedPassword, "hashPassword should return a non-empty string")
	assert.NotEqual(t, password, hashedPassword, "Hashed password should not be equal to the original password")

	// 2. Проверка — успех
	assert.True(t, checkPasswordHash(password, hashedPassword, pepper), "checkPasswordHash should return true for correct password and pepper")

	// 3. Неверный пароль
	assert.False(t, checkPasswordHash("wrongpassword", hashedPassword, pepper), "checkPasswordHash should return false for incorrect password")

	// 4. Неверный pepper — HMAC дает другой вход для bcrypt
	assert.False(t, checkPasswordHash(password, hashedPassword, "another-pepper"), "checkPasswordHash should return false for incorrect pepper")

	// 5. Невалидный хеш читается как несовпадение, не как ошибка
	assert.False(t, checkPasswordHash(password, "not-a-bcrypt-hash", pepper), "checkPasswordHash should return false for invalid hash format")
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	pepper := "pepper"
	first, err := hashPassword("secret1", pepper)
	require.NoError(t, err)
	second, err := hashPassword("secret1", pepper)
	require.NoError(t, err)

	// bcrypt солит сам, одинаковые пароли дают разные хеши
	assert.NotEqual(t, first, second)
	assert.True(t, checkPasswordHash("secret1", first, pepper))
	assert.True(t, checkPasswordHash("secret1", second, pepper))
}
