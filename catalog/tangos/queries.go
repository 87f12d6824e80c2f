package tangos

const (
	querySimulation = `SELECT id FROM simulations WHERE basename = ?`

	queryTimesteps = `SELECT id, extension, redshift, time_gyr
FROM timesteps
WHERE simulation_id = ?
ORDER BY time_gyr ASC`

	queryPreviousTimestep = `SELECT id, extension, redshift, time_gyr
FROM timesteps
WHERE simulation_id = ? AND time_gyr < ?
ORDER BY time_gyr DESC
LIMIT 1`

	queryHalo = `SELECT id FROM halos
WHERE timestep_id = ? AND halo_number = ? AND halo_type = ?`

	queryProperty = `SELECT hp.data_float, hp.data_int, hp.data_array
FROM haloproperties hp
JOIN dictionary d ON hp.name_id = d.id
WHERE hp.halo_id = ? AND d.text = ? AND hp.deprecated = 0
ORDER BY hp.id DESC
LIMIT 1`

	queryCalculateAll = `SELECT h.halo_number, hp.data_float, hp.data_int, hp.data_array
FROM halos h
JOIN haloproperties hp ON hp.halo_id = h.id
JOIN dictionary d ON hp.name_id = d.id
WHERE h.timestep_id = ? AND h.halo_type = ? AND d.text = ? AND hp.deprecated = 0
ORDER BY h.halo_number ASC, hp.id ASC`

	queryProgenitor = `SELECT h.id, h.halo_number
FROM halolink l
JOIN halos h ON l.halo_to_id = h.id
JOIN dictionary d ON l.relation_id = d.id
WHERE l.halo_from_id = ? AND h.timestep_id = ? AND h.halo_type = ? AND d.text = ?
ORDER BY l.weight DESC
LIMIT 1`
)
