// package repositories provides data access over the sqlite cache
// database.
package repositories
